package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order header, its items, and the matching stock
// decrements in one transaction. Stock is decremented conditionally
// (stock >= quantity); an order losing the race for the last unit rolls the
// whole transaction back with apperr.ErrInsufficientStock, so no partial
// writes are ever visible. Context cancellation rolls back the same way.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, status, shipping_address, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.TotalAmount, o.Status, nullable(o.ShippingAddress), o.PaymentMethod)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return err
		}

		res, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = now()
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			// Either the product vanished or stock ran out under us.
			var title sql.NullString
			err := tx.QueryRow(ctx, `SELECT title FROM products WHERE id = $1`, item.ProductID).Scan(&title)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: product %d not found", apperr.ErrNotFound, item.ProductID)
			}
			return fmt.Errorf("%w: insufficient stock for %s", apperr.ErrInsufficientStock, title.String)
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, user_id, total_amount, status, shipping_address, payment_method, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	o := &entity.Order{}
	var shipping, payment sql.NullString
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &shipping, &payment,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	o.ShippingAddress = shipping.String
	o.PaymentMethod = payment.String
	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d not found", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepository) collectOrders(ctx context.Context, rows pgx.Rows) ([]entity.Order, error) {
	defer rows.Close()
	var orders []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
