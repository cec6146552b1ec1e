package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is the metadata record for an uploaded blob; the bytes live
// in the blob store, addressed by Path.
type ProductImage struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Path       string    `json:"path"`
	PublicURL  string    `json:"public_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
