package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.HolidayRepository  = (*HolidayRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepo)(nil)
)

// ── suppliers ────────────────────────────────────────────────────────────────

// SupplierRepo in-memory SupplierRepository.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.suppliers {
		if strings.EqualFold(other.Email, sp.Email) {
			return domain.ErrDuplicate
		}
	}
	stored := *sp
	stored.Holidays = nil
	r.s.suppliers[sp.ID] = stored
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return r.populate(sp), nil
}

func (r *SupplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.suppliers {
		if id != sp.ID && strings.EqualFold(other.Email, sp.Email) {
			return domain.ErrDuplicate
		}
	}
	stored := *sp
	stored.Holidays = nil
	r.s.suppliers[sp.ID] = stored
	return nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		list = append(list, r.populate(sp))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.hasOrders(id) {
		return domain.ErrConflict
	}
	delete(r.s.suppliers, id)
	if sp.HolidayID != "" {
		delete(r.s.holidays, sp.HolidayID)
	}
	for k, p := range r.s.products {
		if p.SupplierID == id {
			delete(r.s.products, k)
		}
	}
	for k, d := range r.s.deliveries {
		if d.SupplierID == id {
			delete(r.s.deliveries, k)
		}
	}
	return nil
}

func (r *SupplierRepo) HasOrders(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.hasOrders(id), nil
}

func (r *SupplierRepo) hasOrders(id string) bool {
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if it.SupplierID == id {
				return true
			}
		}
	}
	return false
}

func (r *SupplierRepo) populate(sp entity.Supplier) *entity.Supplier {
	if h, ok := r.s.holidays[sp.HolidayID]; ok {
		h.Dates = append(h.Dates[:0:0], h.Dates...)
		sp.Holidays = &h
	}
	return &sp
}

// HolidayRepo in-memory HolidayRepository.
type HolidayRepo struct{ s *Store }

func (r *HolidayRepo) Create(_ context.Context, h *entity.Holiday) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.holidays[h.ID] = *h
	return nil
}

func (r *HolidayRepo) GetByID(_ context.Context, id string) (*entity.Holiday, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.holidays[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *HolidayRepo) Update(_ context.Context, h *entity.Holiday) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.holidays[h.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.holidays[h.ID] = *h
	return nil
}

func (r *HolidayRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.holidays[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.holidays, id)
	for k, sp := range r.s.suppliers {
		if sp.HolidayID == id {
			sp.HolidayID = ""
			r.s.suppliers[k] = sp
		}
	}
	return nil
}

// ── categories ───────────────────────────────────────────────────────────────

// CategoryRepo in-memory CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	for id, c := range r.s.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

// ── products ─────────────────────────────────────────────────────────────────

// ProductRepo in-memory ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.refsExist(p) {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.populate(p), nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if !r.refsExist(p) {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.SupplierID == supplierID }), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			list = append(list, r.populate(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func (r *ProductRepo) refsExist(p *entity.Product) bool {
	_, okS := r.s.suppliers[p.SupplierID]
	_, okC := r.s.categories[p.CategoryID]
	return okS && okC
}

func (r *ProductRepo) populate(p entity.Product) *entity.Product {
	p.SupplierName = r.s.suppliers[p.SupplierID].Name
	p.CategoryName = r.s.categories[p.CategoryID].Name
	return &p
}

// ── deliveries ───────────────────────────────────────────────────────────────

// DeliveryRepo in-memory DeliveryRepository.
type DeliveryRepo struct{ s *Store }

func (r *DeliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(d); err != nil {
		return err
	}
	r.s.deliveries[d.ID] = copyDelivery(*d)
	return nil
}

func (r *DeliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	d = copyDelivery(d)
	return &d, nil
}

func (r *DeliveryRepo) GetByBranchAndSupplier(_ context.Context, branchID, supplierID string) (*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.deliveries {
		if d.BranchID == branchID && d.SupplierID == supplierID {
			d = copyDelivery(d)
			return &d, nil
		}
	}
	return nil, nil
}

func (r *DeliveryRepo) Update(_ context.Context, d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[d.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.check(d); err != nil {
		return err
	}
	r.s.deliveries[d.ID] = copyDelivery(*d)
	return nil
}

func (r *DeliveryRepo) List(_ context.Context) ([]*entity.Delivery, error) {
	return r.filter(func(entity.Delivery) bool { return true }), nil
}

func (r *DeliveryRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.Delivery, error) {
	return r.filter(func(d entity.Delivery) bool { return d.BranchID == branchID }), nil
}

func (r *DeliveryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.deliveries, id)
	return nil
}

func (r *DeliveryRepo) filter(keep func(entity.Delivery) bool) []*entity.Delivery {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Delivery
	for _, d := range r.s.deliveries {
		if keep(d) {
			d = copyDelivery(d)
			list = append(list, &d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

// check enforces existing references and one schedule per branch and supplier.
func (r *DeliveryRepo) check(d *entity.Delivery) error {
	if _, ok := r.s.users[d.BranchID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.suppliers[d.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.deliveries {
		if id != d.ID && other.BranchID == d.BranchID && other.SupplierID == d.SupplierID {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func copyDelivery(d entity.Delivery) entity.Delivery {
	d.Days = append([]string(nil), d.Days...)
	return d
}
