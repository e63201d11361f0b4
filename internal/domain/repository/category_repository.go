package repository

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// CategoryRepository persistence port for Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete returns domain.ErrConflict while products still reference the category.
	Delete(ctx context.Context, id string) error
}
