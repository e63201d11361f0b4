package repository

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// SupplierRepository persistence port for Supplier. Reads populate Holidays.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	// Delete also removes the supplier's holiday calendar.
	Delete(ctx context.Context, id string) error
	// HasOrders reports whether any order line was supplied by the supplier.
	HasOrders(ctx context.Context, id string) (bool, error)
}

// HolidayRepository persistence port for holiday calendars.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *entity.Holiday) error
	GetByID(ctx context.Context, id string) (*entity.Holiday, error)
	Update(ctx context.Context, holiday *entity.Holiday) error
	Delete(ctx context.Context, id string) error
}
