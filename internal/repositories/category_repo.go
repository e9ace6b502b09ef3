package repositories

import (
	"context"

	"catalog/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context) ([]*models.Category, error)
	ListActiveChildren(ctx context.Context, parentID int64) ([]*models.Category, error)
}

type categoryRepo struct {
	db DBTX
}

func NewCategoryRepo(db DBTX) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, slug, parent_id, is_active, created_at, updated_at`

func scanCategory(row scanner) (*models.Category, error) {
	c := &models.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID, category.IsActive).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	return mapError(err, "category", category.Slug)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "category", id)
	}
	return c, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	c, err := scanCategory(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, mapError(err, "category", slug)
	}
	return c, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, parent_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID, category.ID).
		Scan(&category.UpdatedAt)
	return mapError(err, "category", category.ID)
}

func (r *categoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return mapError(err, "category", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "category", id)
	}
	return nil
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_active = TRUE ORDER BY id`
	return r.list(ctx, query)
}

func (r *categoryRepo) ListActiveChildren(ctx context.Context, parentID int64) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = $1 AND is_active = TRUE ORDER BY id`
	return r.list(ctx, query, parentID)
}

func (r *categoryRepo) list(ctx context.Context, query string, args ...any) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "category", nil)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err, "category", nil)
		}
		categories = append(categories, c)
	}
	return categories, mapError(rows.Err(), "category", nil)
}
