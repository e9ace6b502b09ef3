package models

import "time"

type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"` // minor currency units
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Stock       int       `json:"stock" db:"stock"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	Rating      float64   `json:"rating" db:"rating"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	SupplierID  *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductInput is the writable subset of a product used by create and update.
// Rating and supplier are never set through it.
type ProductInput struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Price       int64  `json:"price" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
}

// DefaultRating is the aggregate of a product with no active ratings.
const DefaultRating = 0.0
