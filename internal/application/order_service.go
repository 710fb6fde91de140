package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	repo "github.com/Amrsono/Store-2090/internal/domain/repository"
)

const defaultPaymentMethod = "Cash"

// OrderService owns order placement and status transitions.
type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Users    repo.UserRepository
	Mail     EmailQueue
	Logger   *logrus.Logger

	StoreName string
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository, users repo.UserRepository, mail EmailQueue, logger *logrus.Logger, storeName string) *OrderService {
	return &OrderService{
		Orders:    orders,
		Products:  products,
		Users:     users,
		Mail:      mail,
		Logger:    logger,
		StoreName: storeName,
	}
}

// LineRequest is one requested (product, quantity) pair.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// PlaceOrder validates every line against live stock, captures current prices
// into the order items, and persists order, items, and stock decrements as one
// atomic unit. Validation failures abort before any mutation; the repository
// re-checks stock inside the transaction, so concurrent orders racing for the
// last unit cannot both succeed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, shippingAddress, paymentMethod string, lines []LineRequest) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order has no items", apperr.ErrInvalidArgument)
	}

	var total float64
	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %d", apperr.ErrInvalidArgument, line.ProductID)
		}
		p, err := s.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %d not found", apperr.ErrNotFound, line.ProductID)
			}
			// storage failure, not a domain condition
			return nil, err
		}
		if p.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", apperr.ErrInsufficientStock, p.Title)
		}
		// The unit price is a snapshot; later price changes never alter this order.
		total += p.Price * float64(line.Quantity)
		items = append(items, entity.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
	}

	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	o := &entity.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          entity.StatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Items:           items,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(ctx, o)
	return o, nil
}

// UpdateStatus validates and applies a status transition. No stock effects.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	parsed, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown order status %q", apperr.ErrInvalidArgument, status)
	}
	if err := s.Orders.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, err
	}
	return s.Orders.GetByID(ctx, id)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	return s.Orders.GetByID(ctx, id)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// ListOrders returns every order; used by the admin dashboard.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.Orders.List(ctx)
}

func (s *OrderService) sendConfirmationEmail(ctx context.Context, o *entity.Order) {
	if s.Mail == nil || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("confirmation recipient lookup failed")
		}
		return
	}
	enqueueEmail(ctx, s.Mail, s.Logger, orderConfirmationEmailJob(u, o, s.StoreName))
}
