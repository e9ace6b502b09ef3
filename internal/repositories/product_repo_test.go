package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"catalog/internal/common"
	"catalog/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var productColumnNames = []string{"id", "name", "slug", "description", "price", "image_url", "stock",
	"category_id", "rating", "is_active", "supplier_id", "created_at", "updated_at"}

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	now     time.Time
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewProductRepo(mock)
	suite.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) productRow(rows *pgxmock.Rows, id int64, slug string, supplierID *int64) *pgxmock.Rows {
	return rows.AddRow(id, "Phone", slug, "desc", int64(1999), (*string)(nil), 4, int64(2), 4.5, true,
		supplierID, suite.now, suite.now)
}

func (suite *ProductRepoTestSuite) TestCreate_Success() {
	supplierID := int64(9)
	product := &models.Product{
		Name: "Phone X", Slug: "phone-x", Description: "d", Price: 1999, Stock: 3,
		CategoryID: 2, Rating: 0, IsActive: true, SupplierID: &supplierID,
	}

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO products (name, slug, description, price, stock, category_id, rating, is_active, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`)).WithArgs("Phone X", "phone-x", "d", int64(1999), 3, int64(2), 0.0, true, &supplierID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), suite.now, suite.now))

	err := suite.repo.Create(suite.context, product)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(11), product.ID)
	assert.Equal(suite.T(), suite.now, product.CreatedAt)
}

func (suite *ProductRepoTestSuite) TestCreate_DuplicateSlug() {
	product := &models.Product{Name: "Phone X", Slug: "phone-x", CategoryID: 2, IsActive: true}

	suite.mock.ExpectQuery(`INSERT INTO products`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_slug_key"})

	err := suite.repo.Create(suite.context, product)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *ProductRepoTestSuite) TestGetBySlug() {
	supplierID := int64(9)
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + productColumns + ` FROM products WHERE slug = $1`)).
		WithArgs("phone").
		WillReturnRows(suite.productRow(pgxmock.NewRows(productColumnNames), 5, "phone", &supplierID))

	p, err := suite.repo.GetBySlug(suite.context, "phone")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), p.ID)
	assert.Equal(suite.T(), 4.5, p.Rating)
	assert.Equal(suite.T(), int64(9), *p.SupplierID)
	assert.Nil(suite.T(), p.ImageURL)
}

func (suite *ProductRepoTestSuite) TestGetBySlug_NotFound() {
	suite.mock.ExpectQuery(`FROM products WHERE slug`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetBySlug(suite.context, "missing")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestListAvailableInCategories() {
	rows := pgxmock.NewRows(productColumnNames)
	suite.productRow(rows, 1, "a", nil)
	suite.productRow(rows, 3, "b", nil)

	suite.mock.ExpectQuery(`WHERE category_id = ANY\(\$1\) AND is_active = TRUE AND stock > 0`).
		WithArgs([]int64{2, 4}).
		WillReturnRows(rows)

	products, err := suite.repo.ListAvailableInCategories(suite.context, []int64{2, 4})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 2)
	assert.Equal(suite.T(), int64(3), products[1].ID)
}

func (suite *ProductRepoTestSuite) TestListAvailableInCategories_EmptyScope() {
	products, err := suite.repo.ListAvailableInCategories(suite.context, nil)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), products)
}

func (suite *ProductRepoTestSuite) TestSetActive_NoRows() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(false, int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetActive(suite.context, 4, false)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestListIDs() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM products ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	ids, err := suite.repo.ListIDs(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{1, 2}, ids)
}
