package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	repo "github.com/Amrsono/Store-2090/internal/domain/repository"
)

// memStore is a shared in-memory backing store so the order fake can
// decrement the same product rows the product fake serves.
type memStore struct {
	mu sync.Mutex

	users    map[int64]*entity.User
	products map[int64]*entity.Product
	orders   map[int64]*entity.Order

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*entity.User{},
		products: map[int64]*entity.Product{},
		orders:   map[int64]*entity.Order{},
	}
}

func (s *memStore) addProduct(p entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProductID++
	p.ID = s.nextProductID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = &p
	return &p
}

func (s *memStore) addUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = time.Now()
	s.users[u.ID] = &u
	return &u
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return fmt.Errorf("%w: user with this email or username already exists", apperr.ErrConflict)
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
}

func (r *fakeUserRepo) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if token != "" && u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: verification token", apperr.ErrNotFound)
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// Update mirrors the repository contract: profile fields only.
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[u.ID]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, u.ID)
	}
	stored.Email = u.Email
	stored.FullName = u.FullName
	return nil
}

func (r *fakeUserRepo) ToggleActive(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	u.IsActive = !u.IsActive
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, token string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if token != "" && u.VerificationToken == token {
			u.EmailVerified = true
			u.VerificationToken = ""
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: verification token", apperr.ErrNotFound)
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProductID++
	p.ID = r.s.nextProductID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context, f repo.ProductFilter) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []entity.Product
	for i := int64(1); i <= r.s.nextProductID; i++ {
		p, ok := r.s.products[i]
		if !ok || !p.IsActive {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		all = append(all, *p)
	}
	if f.Offset >= len(all) {
		return []entity.Product{}, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return fmt.Errorf("%w: product %d", apperr.ErrNotFound, p.ID)
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
	}
	p.IsActive = false
	return nil
}

type fakeOrderRepo struct{ s *memStore }

// Create mirrors the transactional contract: every decrement is checked
// under the same lock, and failure leaves no partial writes.
func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range o.Items {
		p, ok := r.s.products[item.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %d", apperr.ErrNotFound, item.ProductID)
		}
		if p.Stock < item.Quantity {
			return fmt.Errorf("%w: insufficient stock for %s", apperr.ErrInsufficientStock, p.Title)
		}
	}
	for i := range o.Items {
		r.s.products[o.Items[i].ProductID].Stock -= o.Items[i].Quantity
	}

	r.s.nextOrderID++
	o.ID = r.s.nextOrderID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		r.s.nextItemID++
		o.Items[i].ID = r.s.nextItemID
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, id)
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Order
	for i := int64(1); i <= r.s.nextOrderID; i++ {
		if o, ok := r.s.orders[i]; ok && o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Order
	for i := int64(1); i <= r.s.nextOrderID; i++ {
		if o, ok := r.s.orders[i]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", apperr.ErrNotFound, id)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// fakeEmailQueue records enqueued payloads for assertions.
type fakeEmailQueue struct {
	mu   sync.Mutex
	jobs []any
}

func (q *fakeEmailQueue) PublishJSON(_ context.Context, v any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, v)
	return nil
}

func (q *fakeEmailQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
