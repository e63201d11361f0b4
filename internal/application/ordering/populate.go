package ordering

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

// Populator resolves the branch and supplier references of orders into response DTOs.
// Lookups are memoised for the lifetime of the Populator, so build one per request.
type Populator struct {
	users     repository.UserRepository
	suppliers repository.SupplierRepository

	branchCache   map[string]*entity.User
	supplierCache map[string]*entity.Supplier
}

// NewPopulator builds a Populator.
func NewPopulator(users repository.UserRepository, suppliers repository.SupplierRepository) *Populator {
	return &Populator{
		users:         users,
		suppliers:     suppliers,
		branchCache:   map[string]*entity.User{},
		supplierCache: map[string]*entity.Supplier{},
	}
}

// Order maps one order. With a non-empty supplierID only that supplier's lines are kept.
func (p *Populator) Order(ctx context.Context, o *entity.Order, supplierID string) (*dto.OrderResponse, error) {
	branch, err := p.branch(ctx, o.BranchID)
	if err != nil {
		return nil, err
	}
	items := o.Items
	if supplierID != "" {
		items = o.ItemsForSupplier(supplierID)
	}
	lines, err := p.Items(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.OrderResponse{
		ID:                   o.ID,
		Branch:               userSummary(branch),
		Products:             lines,
		TotalPrice:           o.TotalPrice,
		Status:               o.Status,
		DeliveryAddress:      o.DeliveryAddress,
		DeliveryInstructions: o.DeliveryInstructions,
		PaymentMethod:        o.PaymentMethod,
		CreatedAt:            o.CreatedAt,
	}, nil
}

// Orders maps a list of orders, see Order.
func (p *Populator) Orders(ctx context.Context, list []*entity.Order, supplierID string) ([]dto.OrderResponse, error) {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		resp, err := p.Order(ctx, o, supplierID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Items maps order lines with their supplier populated.
func (p *Populator) Items(ctx context.Context, items []entity.OrderItem) ([]dto.OrderItemResponse, error) {
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		s, err := p.supplier(ctx, it.SupplierID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.OrderItemResponse{
			ProductID:    it.ProductID,
			Name:         it.ProductName,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			VAT:          it.VAT,
			DeliveryDate: it.DeliveryDate,
			Supplier:     supplierSummary(s),
		})
	}
	return out, nil
}

// Branch returns the summary of a branch; nil when the account no longer exists.
func (p *Populator) Branch(ctx context.Context, id string) (*dto.UserSummary, error) {
	u, err := p.branch(ctx, id)
	if err != nil {
		return nil, err
	}
	return userSummary(u), nil
}

func (p *Populator) branch(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := p.branchCache[id]; ok {
		return u, nil
	}
	u, err := p.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.branchCache[id] = u
	return u, nil
}

func (p *Populator) supplier(ctx context.Context, id string) (*entity.Supplier, error) {
	if id == "" {
		return nil, nil
	}
	if s, ok := p.supplierCache[id]; ok {
		return s, nil
	}
	s, err := p.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.supplierCache[id] = s
	return s, nil
}

func userSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         u.Email,
		Address:       dto.AddressDTO{Street: u.Address.Street, City: u.Address.City, Postcode: u.Address.Postcode},
		PaymentMethod: u.PaymentMethod,
	}
}

func supplierSummary(s *entity.Supplier) *dto.SupplierSummary {
	if s == nil {
		return nil
	}
	return &dto.SupplierSummary{
		ID:      s.ID,
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: dto.AddressDTO{Street: s.Address.Street, City: s.Address.City, Postcode: s.Address.Postcode},
	}
}
