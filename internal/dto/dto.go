package dto

import (
	"errors"

	"github.com/wardiya/storefront/internal/models"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PhoneLoginRequest struct {
	Phone string `json:"phone"`
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ProductRef accepts the product-like shapes the frontend sends: legacy
// payloads use productId or _id for the id and imageUrl or mainImage for the
// image. Canonical() maps any of them onto one internal record so nothing
// downstream ever sees the alternates.
type ProductRef struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	MongoID   string `json:"_id"`

	Slug          string  `json:"slug"`
	NameAr        string  `json:"nameAr"`
	NameEn        string  `json:"nameEn"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	ImageURL      string  `json:"imageUrl"`
	MainImage     string  `json:"mainImage"`
	CategoryID    string  `json:"categoryId"`
	OccasionID    string  `json:"occasionId"`
	IsBestSeller  bool    `json:"isBestSeller"`
	IsSpecialGift bool    `json:"isSpecialGift"`
}

var (
	ErrMissingProductID = errors.New("product id is required")
	ErrNegativePrice    = errors.New("price must not be negative")
)

// Canonical normalizes the reference into the internal product record.
func (r ProductRef) Canonical() (models.Product, error) {
	id := r.ID
	if id == "" {
		id = r.ProductID
	}
	if id == "" {
		id = r.MongoID
	}
	if id == "" {
		return models.Product{}, ErrMissingProductID
	}
	if r.Price < 0 {
		return models.Product{}, ErrNegativePrice
	}

	image := r.Image
	if image == "" {
		image = r.ImageURL
	}
	if image == "" {
		image = r.MainImage
	}

	return models.Product{
		ID:            id,
		Slug:          r.Slug,
		NameAr:        r.NameAr,
		NameEn:        r.NameEn,
		Price:         r.Price,
		Image:         image,
		CategoryID:    r.CategoryID,
		OccasionID:    r.OccasionID,
		IsBestSeller:  r.IsBestSeller,
		IsSpecialGift: r.IsSpecialGift,
	}, nil
}

type CartAddRequest struct {
	ProductRef
	Quantity int `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

type FavoriteAddRequest struct {
	ProductRef
}

type CartResponse struct {
	Items         []models.CartItem `json:"items"`
	Count         int               `json:"count"`
	TotalQuantity int               `json:"totalQuantity"`
}

type FavoritesResponse struct {
	Items []models.FavoriteItem `json:"items"`
	Count int                   `json:"count"`
}
