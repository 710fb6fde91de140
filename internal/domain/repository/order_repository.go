package repository

import (
	"context"

	"github.com/Amrsono/Store-2090/internal/domain/entity"
)

// OrderRepository persists orders. Create is the transactional heart of the
// system: the order header, every item, and the matching stock decrements
// must land atomically or not at all. Implementations must decrement stock
// conditionally (stock >= quantity) so that two orders racing for the last
// unit cannot both succeed; losing the race fails with
// apperr.ErrInsufficientStock and leaves no partial writes.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
	// UpdateStatus is a pure field update with no stock side effects.
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
}
