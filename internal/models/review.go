package models

import "time"

// MaxCommentLength bounds Review.Comment in characters.
const MaxCommentLength = 1000

type Review struct {
	ID          int64     `json:"id" db:"id"`
	Comment     *string   `json:"comment,omitempty" db:"comment"`
	CommentDate time.Time `json:"comment_date" db:"comment_date"`
	UserID      int64     `json:"user_id" db:"user_id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	RatingID    int64     `json:"rating_id" db:"rating_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// ReviewView is a review joined with its grade, as returned by listings.
type ReviewView struct {
	Review
	Grade    int    `json:"grade" db:"grade"`
	Username string `json:"username" db:"username"`
}

type ReviewInput struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Grade     int     `json:"grade" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
