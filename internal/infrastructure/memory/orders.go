package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.AddressRepository     = (*AddressRepo)(nil)
	_ repository.CardRepository        = (*CardRepo)(nil)
	_ repository.StatsRepository       = (*StatsRepo)(nil)
)

// OrderRepo in-memory OrderRepository.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.New().String()
		}
		o.Items[i].OrderID = o.ID
	}
	r.s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(entity.Order) bool { return true }), nil
}

func (r *OrderRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return o.BranchID == branchID }), nil
}

func (r *OrderRepo) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return len(o.ItemsForSupplier(supplierID)) > 0 }), nil
}

func (r *OrderRepo) ListCreatedBetween(_ context.Context, start, end time.Time) ([]*entity.Order, error) {
	return r.filter(func(o entity.Order) bool {
		return !o.CreatedAt.Before(start) && !o.CreatedAt.After(end)
	}), nil
}

func (r *OrderRepo) filter(keep func(entity.Order) bool) []*entity.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if keep(o) {
			o = copyOrder(o)
			list = append(list, &o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}

// TransactionRepo in-memory TransactionRepository.
type TransactionRepo struct{ s *Store }

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = *t
	return nil
}

// ListByOrder returns the transactions recorded for an order.
func (r *TransactionRepo) ListByOrder(orderID string) []entity.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Transaction
	for _, t := range r.s.transactions {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out
}

// AddressRepo in-memory AddressRepository.
type AddressRepo struct{ s *Store }

func (r *AddressRepo) Create(_ context.Context, a *entity.DeliveryAddress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses[a.ID] = *a
	return nil
}

func (r *AddressRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.DeliveryAddress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.DeliveryAddress
	for _, a := range r.s.addresses {
		if a.BranchID == branchID {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// CardRepo in-memory CardRepository.
type CardRepo struct{ s *Store }

func (r *CardRepo) Create(_ context.Context, c *entity.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cards[c.ID] = *c
	return nil
}

func (r *CardRepo) GetByID(_ context.Context, id string) (*entity.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cards[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CardRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Card
	for _, c := range r.s.cards {
		if c.BranchID == branchID {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// StatsRepo in-memory StatsRepository.
type StatsRepo struct{ s *Store }

func (r *StatsRepo) GetDashboardCounts(_ context.Context) (*repository.DashboardCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := &repository.DashboardCounts{
		Suppliers: len(r.s.suppliers),
		Orders:    len(r.s.orders),
		Products:  len(r.s.products),
		Sales:     decimal.Zero,
	}
	for _, u := range r.s.users {
		if u.Role == entity.RoleBranch {
			c.Branches++
		}
	}
	for _, o := range r.s.orders {
		c.Sales = c.Sales.Add(o.TotalPrice)
	}
	return c, nil
}
