package repositories

import (
	"context"

	"catalog/internal/models"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ListActiveGrades(ctx context.Context, productID int64) ([]int, error)
}

type ratingRepo struct {
	db DBTX
}

func NewRatingRepo(db DBTX) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (grade, user_id, product_id, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, rating.Grade, rating.UserID, rating.ProductID, rating.IsActive).Scan(&rating.ID)
	return mapError(err, "rating", nil)
}

func (r *ratingRepo) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	query := `SELECT id, grade, user_id, product_id, is_active FROM ratings WHERE id = $1`
	rt := &models.Rating{}
	err := r.db.QueryRow(ctx, query, id).Scan(&rt.ID, &rt.Grade, &rt.UserID, &rt.ProductID, &rt.IsActive)
	if err != nil {
		return nil, mapError(err, "rating", id)
	}
	return rt, nil
}

func (r *ratingRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE ratings SET is_active = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return mapError(err, "rating", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "rating", id)
	}
	return nil
}

func (r *ratingRepo) ListActiveGrades(ctx context.Context, productID int64) ([]int, error) {
	query := `SELECT grade FROM ratings WHERE product_id = $1 AND is_active = TRUE ORDER BY id`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, mapError(err, "rating", nil)
	}
	defer rows.Close()

	grades := []int{}
	for rows.Next() {
		var g int
		if err := rows.Scan(&g); err != nil {
			return nil, mapError(err, "rating", nil)
		}
		grades = append(grades, g)
	}
	return grades, mapError(rows.Err(), "rating", nil)
}
