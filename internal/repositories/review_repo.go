package repositories

import (
	"context"

	"catalog/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context) ([]*models.ReviewView, error)
	ListActiveByProduct(ctx context.Context, productID int64) ([]*models.ReviewView, error)
}

type reviewRepo struct {
	db DBTX
}

func NewReviewRepo(db DBTX) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (comment, comment_date, user_id, product_id, rating_id, is_active)
		VALUES ($1, CURRENT_DATE, $2, $3, $4, $5)
		RETURNING id, comment_date
	`
	err := r.db.QueryRow(ctx, query, review.Comment, review.UserID, review.ProductID, review.RatingID, review.IsActive).
		Scan(&review.ID, &review.CommentDate)
	return mapError(err, "review", nil)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `
		SELECT id, comment, comment_date, user_id, product_id, rating_id, is_active
		FROM reviews
		WHERE id = $1
	`
	rv := &models.Review{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&rv.ID, &rv.Comment, &rv.CommentDate, &rv.UserID, &rv.ProductID, &rv.RatingID, &rv.IsActive)
	if err != nil {
		return nil, mapError(err, "review", id)
	}
	return rv, nil
}

func (r *reviewRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE reviews SET is_active = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return mapError(err, "review", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "review", id)
	}
	return nil
}

const reviewViewQuery = `
	SELECT rv.id, rv.comment, rv.comment_date, rv.user_id, rv.product_id, rv.rating_id, rv.is_active, rt.grade, u.username
	FROM reviews rv
	JOIN ratings rt ON rt.id = rv.rating_id
	JOIN users u ON u.id = rv.user_id
	WHERE rv.is_active = TRUE
`

func (r *reviewRepo) ListActive(ctx context.Context) ([]*models.ReviewView, error) {
	return r.list(ctx, reviewViewQuery+` ORDER BY rv.id`)
}

func (r *reviewRepo) ListActiveByProduct(ctx context.Context, productID int64) ([]*models.ReviewView, error) {
	return r.list(ctx, reviewViewQuery+` AND rv.product_id = $1 ORDER BY rv.id`, productID)
}

func (r *reviewRepo) list(ctx context.Context, query string, args ...any) ([]*models.ReviewView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "review", nil)
	}
	defer rows.Close()

	reviews := []*models.ReviewView{}
	for rows.Next() {
		v := &models.ReviewView{}
		err := rows.Scan(&v.ID, &v.Comment, &v.CommentDate, &v.UserID, &v.ProductID, &v.RatingID, &v.IsActive,
			&v.Grade, &v.Username)
		if err != nil {
			return nil, mapError(err, "review", nil)
		}
		reviews = append(reviews, v)
	}
	return reviews, mapError(rows.Err(), "review", nil)
}
