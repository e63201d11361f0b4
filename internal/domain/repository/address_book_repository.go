package repository

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// AddressRepository persistence port for branch delivery addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.DeliveryAddress) error
	ListByBranch(ctx context.Context, branchID string) ([]*entity.DeliveryAddress, error)
}

// CardRepository persistence port for saved payment cards.
type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	GetByID(ctx context.Context, id string) (*entity.Card, error)
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Card, error)
}
