package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserName   string    `json:"user_name"`
	Rating     float64   `json:"rating"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type VerifyOrderRequest struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// VerificationResult is the explicit outcome of the review gate's first
// phase; callers branch on Valid rather than catching errors.
type VerificationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type CreateReviewRequest struct {
	OrderID   string  `json:"order_id" validate:"required"`
	ProductID string  `json:"product_id" validate:"required,uuid"`
	UserName  string  `json:"user_name" validate:"required,min=2,max=120"`
	Rating    float64 `json:"rating" validate:"required,gt=0,lte=5"`
	Title     string  `json:"title" validate:"omitempty,max=200"`
	Content   string  `json:"content" validate:"required,min=10"`
}
