package repository

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// ProductRepository persistence port for Product. Reads fill SupplierName and CategoryName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
