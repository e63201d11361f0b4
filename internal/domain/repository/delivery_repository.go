package repository

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// DeliveryRepository persistence port for branch × supplier delivery schedules.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	GetByBranchAndSupplier(ctx context.Context, branchID, supplierID string) (*entity.Delivery, error)
	Update(ctx context.Context, delivery *entity.Delivery) error
	List(ctx context.Context) ([]*entity.Delivery, error)
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Delivery, error)
	Delete(ctx context.Context, id string) error
}
