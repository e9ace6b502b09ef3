package models

const (
	MinGrade = 1
	MaxGrade = 5
)

type Rating struct {
	ID        int64 `json:"id" db:"id"`
	Grade     int   `json:"grade" db:"grade"`
	UserID    int64 `json:"user_id" db:"user_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	IsActive  bool  `json:"is_active" db:"is_active"`
}
