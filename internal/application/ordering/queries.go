package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// List returns every order, newest first.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewPopulator(uc.users, uc.suppliers).Orders(ctx, list, "")
}

// Get returns one order. Admins see every order; a branch only its own.
func (uc *OrderUseCase) Get(ctx context.Context, callerID, callerRole, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole != entity.RoleAdmin && o.BranchID != callerID {
		return nil, domain.ErrForbidden
	}
	return NewPopulator(uc.users, uc.suppliers).Order(ctx, o, "")
}

// ListForSupplier returns the orders containing the supplier's products, reduced to its lines.
func (uc *OrderUseCase) ListForSupplier(ctx context.Context, supplierID string) ([]dto.OrderResponse, error) {
	if err := uc.supplierExists(ctx, supplierID); err != nil {
		return nil, err
	}
	list, err := uc.orders.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return NewPopulator(uc.users, uc.suppliers).Orders(ctx, list, supplierID)
}

// GetSupplierOrder returns one order reduced to the supplier's lines.
func (uc *OrderUseCase) GetSupplierOrder(ctx context.Context, supplierID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(o.ItemsForSupplier(supplierID)) == 0 {
		return nil, fmt.Errorf("%w: order has no products from this supplier", domain.ErrNotFound)
	}
	return NewPopulator(uc.users, uc.suppliers).Order(ctx, o, supplierID)
}

// ListForBranch returns the orders placed by a branch.
func (uc *OrderUseCase) ListForBranch(ctx context.Context, branchID string) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return NewPopulator(uc.users, uc.suppliers).Orders(ctx, list, "")
}

func (uc *OrderUseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (uc *OrderUseCase) supplierExists(ctx context.Context, id string) error {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: supplier", domain.ErrNotFound)
	}
	return nil
}
