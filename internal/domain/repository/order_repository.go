package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// OrderRepository persistence port for Order. Every read loads the items.
type OrderRepository interface {
	// Create persists the order header and its items.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Order, error)
	// ListBySupplier returns orders with at least one line from the supplier (all lines loaded).
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Order, error)
	// ListCreatedBetween returns orders created in [start, end].
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*entity.Order, error)
}

// TransactionRepository persistence port for payment transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
}
