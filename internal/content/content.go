// Package content collapses bilingual field pairs into single display values
// for the active UI language. Everything here is a pure function: the same
// record and language always produce the same output.
package content

import (
	"strings"

	"github.com/wardiya/storefront/internal/models"
)

type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// ParseLang maps a language tag onto a supported language. Arabic is the
// fallback for unrecognized or empty tags.
func ParseLang(tag string) Lang {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "en" || strings.HasPrefix(tag, "en-") {
		return English
	}
	return Arabic
}

// Dir returns the writing direction for HTML rendering.
func (l Lang) Dir() string {
	if l == English {
		return "ltr"
	}
	return "rtl"
}

// Resolve picks the variant matching the active language.
func Resolve(ar, en string, lang Lang) string {
	if lang == English {
		return en
	}
	return ar
}

type DisplayProduct struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	CategoryID    string  `json:"categoryId,omitempty"`
	OccasionID    string  `json:"occasionId,omitempty"`
	IsBestSeller  bool    `json:"isBestSeller"`
	IsSpecialGift bool    `json:"isSpecialGift"`
}

func ProductDisplay(p models.Product, lang Lang) DisplayProduct {
	return DisplayProduct{
		ID:            p.ID,
		Slug:          p.SlugOrID(),
		Name:          Resolve(p.NameAr, p.NameEn, lang),
		Description:   Resolve(p.DescriptionAr, p.DescriptionEn, lang),
		Price:         p.Price,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		OccasionID:    p.OccasionID,
		IsBestSeller:  p.IsBestSeller,
		IsSpecialGift: p.IsSpecialGift,
	}
}

func ProductsDisplay(products []models.Product, lang Lang) []DisplayProduct {
	out := make([]DisplayProduct, 0, len(products))
	for _, p := range products {
		out = append(out, ProductDisplay(p, lang))
	}
	return out
}

type DisplayCategory struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func CategoryDisplay(c models.Category, lang Lang) DisplayCategory {
	return DisplayCategory{
		ID:          c.ID,
		Slug:        c.SlugOrID(),
		Name:        Resolve(c.NameAr, c.NameEn, lang),
		Description: Resolve(c.DescriptionAr, c.DescriptionEn, lang),
		Image:       c.Image,
	}
}

func CategoriesDisplay(categories []models.Category, lang Lang) []DisplayCategory {
	out := make([]DisplayCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryDisplay(c, lang))
	}
	return out
}

type DisplayOccasion struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func OccasionDisplay(o models.Occasion, lang Lang) DisplayOccasion {
	return DisplayOccasion{
		ID:      o.ID,
		Slug:    o.SlugOrID(),
		Name:    Resolve(o.NameAr, o.NameEn, lang),
		Message: Resolve(o.MessageAr, o.MessageEn, lang),
	}
}

func OccasionsDisplay(occasions []models.Occasion, lang Lang) []DisplayOccasion {
	out := make([]DisplayOccasion, 0, len(occasions))
	for _, o := range occasions {
		out = append(out, OccasionDisplay(o, lang))
	}
	return out
}

type DisplaySlide struct {
	Kind     models.SlideKind `json:"kind"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	CTA      string           `json:"cta"`
	Link     string           `json:"link"`
	Image    string           `json:"image"`
}

func SlideDisplay(s models.HeroSlide, lang Lang) DisplaySlide {
	return DisplaySlide{
		Kind:     s.Kind,
		Title:    Resolve(s.TitleAr, s.TitleEn, lang),
		Subtitle: Resolve(s.SubtitleAr, s.SubtitleEn, lang),
		CTA:      Resolve(s.CTAAr, s.CTAEn, lang),
		Link:     s.Link,
		Image:    s.Image,
	}
}

func SlidesDisplay(slides []models.HeroSlide, lang Lang) []DisplaySlide {
	out := make([]DisplaySlide, 0, len(slides))
	for _, s := range slides {
		out = append(out, SlideDisplay(s, lang))
	}
	return out
}
