package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// UserRepository persistence port for User (admins and branches).
// Getters return (nil, nil) when the record does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken returns the user owning a reset token hash that is still valid at now.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
