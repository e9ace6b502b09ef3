package models

import "time"

type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	ParentID  *int64    `json:"parent_id" db:"parent_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryInput carries the writable fields of a category. The slug is always derived from Name.
type CategoryInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	ParentID *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}
