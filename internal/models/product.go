package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusInStock    ProductStatus = "In Stock"
	ProductStatusOutOfStock ProductStatus = "Out of Stock"
	ProductStatusComingSoon ProductStatus = "Coming Soon"
)

type Product struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Brand         string        `json:"brand"`
	Category      string        `json:"category"`
	Image         string        `json:"image"`
	Images        []string      `json:"images"`
	Price         int64         `json:"price"`
	OriginalPrice *int64        `json:"original_price,omitempty"`
	Status        ProductStatus `json:"status"`
	Processor     string        `json:"processor"`
	RAM           string        `json:"ram"`
	Storage       string        `json:"storage"`
	Display       string        `json:"display"`
	Graphics      string        `json:"graphics"`
	Battery       string        `json:"battery"`
	Weight        string        `json:"weight"`
	Ports         string        `json:"ports"`
	OS            string        `json:"os"`
	Warranty      string        `json:"warranty"`
	IsNew         bool          `json:"is_new"`
	IsFeatured    bool          `json:"is_featured"`
	Description   string        `json:"description"`
	Features      []string      `json:"features"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=3,max=200"`
	Slug          string   `json:"slug" validate:"required,min=3,max=200"`
	Brand         string   `json:"brand" validate:"required"`
	Category      string   `json:"category" validate:"required,oneof=ultrabook gaming business"`
	Image         string   `json:"image" validate:"required,url"`
	Images        []string `json:"images" validate:"omitempty,dive,url"`
	Price         int64    `json:"price" validate:"required,gt=0"`
	OriginalPrice *int64   `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	Status        string   `json:"status" validate:"required,oneof='In Stock' 'Out of Stock' 'Coming Soon'"`
	Processor     string   `json:"processor" validate:"required"`
	RAM           string   `json:"ram,omitempty"`
	Storage       string   `json:"storage,omitempty"`
	Display       string   `json:"display,omitempty"`
	Graphics      string   `json:"graphics,omitempty"`
	Battery       string   `json:"battery,omitempty"`
	Weight        string   `json:"weight,omitempty"`
	Ports         string   `json:"ports,omitempty"`
	OS            string   `json:"os,omitempty"`
	Warranty      string   `json:"warranty,omitempty"`
	IsNew         bool     `json:"is_new,omitempty"`
	IsFeatured    bool     `json:"is_featured,omitempty"`
	Description   string   `json:"description,omitempty"`
	Features      []string `json:"features,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Brand         *string  `json:"brand,omitempty"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,oneof=ultrabook gaming business"`
	Image         *string  `json:"image,omitempty" validate:"omitempty,url"`
	Images        []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Price         *int64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *int64   `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof='In Stock' 'Out of Stock' 'Coming Soon'"`
	Processor     *string  `json:"processor,omitempty"`
	RAM           *string  `json:"ram,omitempty"`
	Storage       *string  `json:"storage,omitempty"`
	Display       *string  `json:"display,omitempty"`
	Graphics      *string  `json:"graphics,omitempty"`
	Battery       *string  `json:"battery,omitempty"`
	Weight        *string  `json:"weight,omitempty"`
	Ports         *string  `json:"ports,omitempty"`
	OS            *string  `json:"os,omitempty"`
	Warranty      *string  `json:"warranty,omitempty"`
	IsNew         *bool    `json:"is_new,omitempty"`
	IsFeatured    *bool    `json:"is_featured,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// ProductFilter mirrors the storefront filter sidebar: every populated
// field narrows the result set, empty fields match everything.
type ProductFilter struct {
	Brand      string
	Category   string
	PriceRange string // under-150000 | 150000-200000 | 200000-250000 | above-250000
	Processor  string // intel-i5 | intel-i7 | amd-ryzen | apple-m1
	Sort       string // price-low | price-high | name | featured (default: newest first)
	Page       int
	Size       int
}
