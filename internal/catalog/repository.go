package catalog

import (
	"context"
	"database/sql"

	"github.com/joao-fontenele/storefront/internal/domain"
)

const defaultPageSize = 20

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products newest first. An empty category matches all
// products. Page numbering starts at 1.
func (r *ProductRepository) List(ctx context.Context, category string, limit, page int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, price_cents, category, image_url, featured, created_at
		FROM products
		WHERE $1 = '' OR category = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &imageURL, &p.Featured, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ImageURL = imageURL.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	var imageURL sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, price_cents, category, image_url, featured, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &imageURL, &p.Featured, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.ImageURL = imageURL.String
	return p, nil
}

// Categories returns the distinct category labels in use.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM products
		WHERE category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
