// Package memory keeps every repository port in process memory. It backs the server when
// DB_DRIVER=memory and the use-case and HTTP tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

// Store shared state of all in-memory repositories.
type Store struct {
	mu           sync.RWMutex
	users        map[string]entity.User
	suppliers    map[string]entity.Supplier
	holidays     map[string]entity.Holiday
	categories   map[string]entity.Category
	products     map[string]entity.Product
	deliveries   map[string]entity.Delivery
	orders       map[string]entity.Order
	addresses    map[string]entity.DeliveryAddress
	cards        map[string]entity.Card
	transactions map[string]entity.Transaction
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        map[string]entity.User{},
		suppliers:    map[string]entity.Supplier{},
		holidays:     map[string]entity.Holiday{},
		categories:   map[string]entity.Category{},
		products:     map[string]entity.Product{},
		deliveries:   map[string]entity.Delivery{},
		orders:       map[string]entity.Order{},
		addresses:    map[string]entity.DeliveryAddress{},
		cards:        map[string]entity.Card{},
		transactions: map[string]entity.Transaction{},
	}
}

func (s *Store) Users() *UserRepo               { return &UserRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo       { return &SupplierRepo{s: s} }
func (s *Store) Holidays() *HolidayRepo         { return &HolidayRepo{s: s} }
func (s *Store) Categories() *CategoryRepo      { return &CategoryRepo{s: s} }
func (s *Store) Products() *ProductRepo         { return &ProductRepo{s: s} }
func (s *Store) Deliveries() *DeliveryRepo      { return &DeliveryRepo{s: s} }
func (s *Store) Orders() *OrderRepo             { return &OrderRepo{s: s} }
func (s *Store) Addresses() *AddressRepo        { return &AddressRepo{s: s} }
func (s *Store) Cards() *CardRepo               { return &CardRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) Stats() *StatsRepo              { return &StatsRepo{s: s} }

// RunOrder runs fn against the store's order and transaction repositories.
// When fn fails, only the rows it wrote are rolled back; concurrent writes survive.
func (s *Store) RunOrder(ctx context.Context, fn func(orders repository.OrderRepository, txs repository.TransactionRepository) error) error {
	orders := &txOrderRepo{OrderRepo: s.Orders(), prior: map[string]*entity.Order{}}
	txs := &txTransactionRepo{TransactionRepo: s.Transactions(), prior: map[string]*entity.Transaction{}}
	if err := fn(orders, txs); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, o := range orders.prior {
			if o == nil {
				delete(s.orders, id)
			} else {
				s.orders[id] = *o
			}
		}
		for id, t := range txs.prior {
			if t == nil {
				delete(s.transactions, id)
			} else {
				s.transactions[id] = *t
			}
		}
		return err
	}
	return nil
}

// txOrderRepo remembers what each written key held before the first write.
type txOrderRepo struct {
	*OrderRepo
	prior map[string]*entity.Order
}

func (r *txOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if _, seen := r.prior[o.ID]; !seen {
		r.s.mu.RLock()
		if old, ok := r.s.orders[o.ID]; ok {
			r.prior[o.ID] = &old
		} else {
			r.prior[o.ID] = nil
		}
		r.s.mu.RUnlock()
	}
	return r.OrderRepo.Create(ctx, o)
}

type txTransactionRepo struct {
	*TransactionRepo
	prior map[string]*entity.Transaction
}

func (r *txTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if _, seen := r.prior[t.ID]; !seen {
		r.s.mu.RLock()
		if old, ok := r.s.transactions[t.ID]; ok {
			r.prior[t.ID] = &old
		} else {
			r.prior[t.ID] = nil
		}
		r.s.mu.RUnlock()
	}
	return r.TransactionRepo.Create(ctx, t)
}

// ── users ────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.Role == role {
			u := u
			list = append(list, &u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, o := range r.s.orders {
		if o.BranchID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	for k, d := range r.s.deliveries {
		if d.BranchID == id {
			delete(r.s.deliveries, k)
		}
	}
	for k, a := range r.s.addresses {
		if a.BranchID == id {
			delete(r.s.addresses, k)
		}
	}
	for k, c := range r.s.cards {
		if c.BranchID == id {
			delete(r.s.cards, k)
		}
	}
	return nil
}

// emailTaken caller holds the lock.
func (r *UserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
