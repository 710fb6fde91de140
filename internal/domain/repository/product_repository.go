package repository

import (
	"context"

	"github.com/Amrsono/Store-2090/internal/domain/entity"
)

// ProductFilter narrows catalog listings. Category is optional; Limit and
// Offset are required and the repository trusts the service to bound them.
type ProductFilter struct {
	Category *entity.ProductCategory
	Limit    int
	Offset   int
}

// ProductRepository defines product persistence. Listing only ever returns
// active products; stock mutation happens inside OrderRepository.Create.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListActive(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	// Deactivate soft-deletes a product so historical order items keep a
	// valid reference.
	Deactivate(ctx context.Context, id int64) error
}
