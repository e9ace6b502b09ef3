package repositories

import (
	"context"

	"catalog/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetImageURL(ctx context.Context, id int64, url string) error
	ListAvailable(ctx context.Context) ([]*models.Product, error)
	ListAvailableInCategories(ctx context.Context, categoryIDs []int64) ([]*models.Product, error)
	ListIDs(ctx context.Context) ([]int64, error)

	// LockForUpdate reads the product row and holds an exclusive row lock until the
	// enclosing transaction ends. Outside a transaction the lock is released immediately.
	LockForUpdate(ctx context.Context, id int64) (*models.Product, error)
	UpdateRating(ctx context.Context, id int64, rating float64) error
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, slug, description, price, image_url, stock, category_id, rating, is_active, supplier_id, created_at, updated_at`

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ImageURL, &p.Stock,
		&p.CategoryID, &p.Rating, &p.IsActive, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, slug, description, price, stock, category_id, rating, is_active, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, product.Name, product.Slug, product.Description, product.Price, product.Stock,
		product.CategoryID, product.Rating, product.IsActive, product.SupplierID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	return mapError(err, "product", product.Slug)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "product", id)
	}
	return p, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, mapError(err, "product", slug)
	}
	return p, nil
}

// Update writes the catalog fields only. Rating and supplier are owned by other paths.
func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, stock = $5, category_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, product.Name, product.Slug, product.Description, product.Price,
		product.Stock, product.CategoryID, product.ID).Scan(&product.UpdatedAt)
	return mapError(err, "product", product.ID)
}

func (r *productRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, id, query, active, id)
}

func (r *productRepo) SetImageURL(ctx context.Context, id int64, url string) error {
	query := `UPDATE products SET image_url = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, id, query, url, id)
}

func (r *productRepo) UpdateRating(ctx context.Context, id int64, rating float64) error {
	query := `UPDATE products SET rating = $1 WHERE id = $2`
	return r.execOne(ctx, id, query, rating, id)
}

func (r *productRepo) LockForUpdate(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "product", id)
	}
	return p, nil
}

func (r *productRepo) ListAvailable(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND stock > 0
		ORDER BY id
	`
	return r.list(ctx, query)
}

func (r *productRepo) ListAvailableInCategories(ctx context.Context, categoryIDs []int64) ([]*models.Product, error) {
	if len(categoryIDs) == 0 {
		return []*models.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = ANY($1) AND is_active = TRUE AND stock > 0
		ORDER BY id
	`
	return r.list(ctx, query, categoryIDs)
}

func (r *productRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM products ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "product", nil)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err, "product", nil)
		}
		ids = append(ids, id)
	}
	return ids, mapError(rows.Err(), "product", nil)
}

func (r *productRepo) list(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "product", nil)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "product", nil)
		}
		products = append(products, p)
	}
	return products, mapError(rows.Err(), "product", nil)
}

func (r *productRepo) execOne(ctx context.Context, id int64, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "product", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "product", id)
	}
	return nil
}
