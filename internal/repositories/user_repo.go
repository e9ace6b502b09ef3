package repositories

import (
	"context"

	"catalog/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateRoles(ctx context.Context, id int64, isSupplier, isCustomer bool) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, first_name, last_name, hashed_password, is_admin, is_supplier, is_customer, is_active, created_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.HashedPassword,
		&u.IsAdmin, &u.IsSupplier, &u.IsCustomer, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create relies on the unique constraints on username and email; a violation maps to Conflict.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, hashed_password, is_admin, is_supplier, is_customer, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Username, user.Email, user.FirstName, user.LastName, user.HashedPassword,
		user.IsAdmin, user.IsSupplier, user.IsCustomer, user.IsActive).Scan(&user.ID, &user.CreatedAt)
	return mapError(err, "user", user.Username)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, mapError(err, "user", username)
	}
	return u, nil
}

func (r *userRepo) UpdateRoles(ctx context.Context, id int64, isSupplier, isCustomer bool) error {
	query := `UPDATE users SET is_supplier = $1, is_customer = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, isSupplier, isCustomer, id)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "user", id)
	}
	return nil
}

func (r *userRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE users SET is_active = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, "user", id)
	}
	return nil
}
