package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, title, description, price, category, gradient, size, stock, image_url, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	var description, gradient, imageURL sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &description, &p.Price, &p.Category, &gradient,
		&p.Size, &p.Stock, &imageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	p.Description = description.String
	p.Gradient = gradient.String
	p.ImageURL = imageURL.String
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, description, price, category, gradient, size, stock, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.Title, nullable(p.Description), p.Price, p.Category, nullable(p.Gradient),
		p.Size, p.Stock, nullable(p.ImageURL), p.IsActive)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id))
}

func (r *ProductRepository) ListActive(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE`
	args := []any{}
	if f.Category != nil {
		query += ` AND category = $1`
		args = append(args, *f.Category)
	}
	query += ` ORDER BY id`
	if f.Category != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, description = $2, price = $3, category = $4, gradient = $5,
		    size = $6, stock = $7, image_url = $8, is_active = $9, updated_at = now()
		WHERE id = $10
	`, p.Title, nullable(p.Description), p.Price, p.Category, nullable(p.Gradient),
		p.Size, p.Stock, nullable(p.ImageURL), p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
