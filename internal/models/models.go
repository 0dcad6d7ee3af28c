package models

import "time"

// User is the identity record owned by the session store. It is a projection
// of the upstream account, never persisted here.
type User struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"emailVerified"`
	PhoneVerified bool    `json:"phoneVerified"`
	Phone         *string `json:"phone,omitempty"`
	Picture       *string `json:"picture,omitempty"`
}

// Product is a read-only projection of an upstream catalog entity.
type Product struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	NameAr        string  `json:"nameAr"`
	NameEn        string  `json:"nameEn"`
	DescriptionAr string  `json:"descriptionAr"`
	DescriptionEn string  `json:"descriptionEn"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	CategoryID    string  `json:"categoryId,omitempty"`
	OccasionID    string  `json:"occasionId,omitempty"`
	IsBestSeller  bool    `json:"isBestSeller"`
	IsSpecialGift bool    `json:"isSpecialGift"`
}

// SlugOrID returns the URL identifier, falling back to the id when the
// upstream record carries no slug.
func (p Product) SlugOrID() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID
}

type Category struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	NameAr        string `json:"nameAr"`
	NameEn        string `json:"nameEn"`
	DescriptionAr string `json:"descriptionAr"`
	DescriptionEn string `json:"descriptionEn"`
	Image         string `json:"image"`
}

func (c Category) SlugOrID() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.ID
}

// Occasion is a time-bound campaign (Eid, Mother's Day, ...). Images each
// become one hero slide while the occasion is active.
type Occasion struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	NameAr    string    `json:"nameAr"`
	NameEn    string    `json:"nameEn"`
	MessageAr string    `json:"messageAr"`
	MessageEn string    `json:"messageEn"`
	Images    []string  `json:"images"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

func (o Occasion) SlugOrID() string {
	if o.Slug != "" {
		return o.Slug
	}
	return o.ID
}

// ActiveAt reports whether the occasion window covers the given instant.
func (o Occasion) ActiveAt(t time.Time) bool {
	return !t.Before(o.StartsAt) && t.Before(o.EndsAt)
}

// CartItem is one line of a visitor's cart. At most one line exists per
// product id.
type CartItem struct {
	ProductID     string  `json:"productId"`
	NameAr        string  `json:"nameAr"`
	NameEn        string  `json:"nameEn"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	CategoryID    string  `json:"categoryId,omitempty"`
	OccasionID    string  `json:"occasionId,omitempty"`
	IsBestSeller  bool    `json:"isBestSeller"`
	IsSpecialGift bool    `json:"isSpecialGift"`
}

// CartItemFromProduct builds the canonical cart line for a product.
func CartItemFromProduct(p Product, quantity int) CartItem {
	return CartItem{
		ProductID:     p.ID,
		NameAr:        p.NameAr,
		NameEn:        p.NameEn,
		Price:         p.Price,
		Image:         p.Image,
		Quantity:      quantity,
		CategoryID:    p.CategoryID,
		OccasionID:    p.OccasionID,
		IsBestSeller:  p.IsBestSeller,
		IsSpecialGift: p.IsSpecialGift,
	}
}

// FavoriteItem mirrors CartItem without a quantity; DateAdded orders the
// favorites page.
type FavoriteItem struct {
	ProductID     string    `json:"productId"`
	NameAr        string    `json:"nameAr"`
	NameEn        string    `json:"nameEn"`
	Price         float64   `json:"price"`
	Image         string    `json:"image"`
	CategoryID    string    `json:"categoryId,omitempty"`
	OccasionID    string    `json:"occasionId,omitempty"`
	IsBestSeller  bool      `json:"isBestSeller"`
	IsSpecialGift bool      `json:"isSpecialGift"`
	DateAdded     time.Time `json:"dateAdded"`
}

func FavoriteFromProduct(p Product, at time.Time) FavoriteItem {
	return FavoriteItem{
		ProductID:     p.ID,
		NameAr:        p.NameAr,
		NameEn:        p.NameEn,
		Price:         p.Price,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		OccasionID:    p.OccasionID,
		IsBestSeller:  p.IsBestSeller,
		IsSpecialGift: p.IsSpecialGift,
		DateAdded:     at,
	}
}

// Promotion is a marketing banner managed upstream.
type Promotion struct {
	ID         string `json:"id"`
	TitleAr    string `json:"titleAr"`
	TitleEn    string `json:"titleEn"`
	SubtitleAr string `json:"subtitleAr"`
	SubtitleEn string `json:"subtitleEn"`
	CTAAr      string `json:"ctaAr"`
	CTAEn      string `json:"ctaEn"`
	Link       string `json:"link"`
	Image      string `json:"image"`
}

type SlideKind string

const (
	SlidePromotion SlideKind = "promotion"
	SlideOccasion  SlideKind = "occasion"
)

// HeroSlide is the normalized union of the two hero sources. It keeps the
// raw bilingual pairs so a language switch re-resolves without a re-fetch.
type HeroSlide struct {
	Kind       SlideKind `json:"kind"`
	TitleAr    string    `json:"titleAr"`
	TitleEn    string    `json:"titleEn"`
	SubtitleAr string    `json:"subtitleAr"`
	SubtitleEn string    `json:"subtitleEn"`
	CTAAr      string    `json:"ctaAr"`
	CTAEn      string    `json:"ctaEn"`
	Link       string    `json:"link"`
	Image      string    `json:"image"`
	OccasionID string    `json:"occasionId,omitempty"`
}

// SlideFromPromotion maps a marketing banner onto the slide shape.
func SlideFromPromotion(p Promotion) HeroSlide {
	return HeroSlide{
		Kind:       SlidePromotion,
		TitleAr:    p.TitleAr,
		TitleEn:    p.TitleEn,
		SubtitleAr: p.SubtitleAr,
		SubtitleEn: p.SubtitleEn,
		CTAAr:      p.CTAAr,
		CTAEn:      p.CTAEn,
		Link:       p.Link,
		Image:      p.Image,
	}
}

// SlidesFromOccasion yields one slide per image of an occasion that is
// active at the given instant. The celebratory message is the title.
func SlidesFromOccasion(o Occasion, now time.Time) []HeroSlide {
	if !o.ActiveAt(now) {
		return nil
	}
	slides := make([]HeroSlide, 0, len(o.Images))
	for _, img := range o.Images {
		slides = append(slides, HeroSlide{
			Kind:       SlideOccasion,
			TitleAr:    o.MessageAr,
			TitleEn:    o.MessageEn,
			SubtitleAr: o.NameAr,
			SubtitleEn: o.NameEn,
			Link:       "/occasions/" + o.SlugOrID(),
			Image:      img,
			OccasionID: o.ID,
		})
	}
	return slides
}

// Pagination mirrors the upstream list envelope.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type ProductPage struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
