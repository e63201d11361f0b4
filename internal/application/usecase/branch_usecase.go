package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// BranchUseCase admin management of shop accounts.
type BranchUseCase struct {
	users repository.UserRepository
}

// NewBranchUseCase builds the use case.
func NewBranchUseCase(users repository.UserRepository) *BranchUseCase {
	return &BranchUseCase{users: users}
}

// Create registers a shop account. The shop name is stored as the first name.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Firstname:     strings.TrimSpace(in.Name),
		Email:         email,
		PasswordHash:  string(hash),
		Role:          defaultString(in.Role, entity.RoleBranch),
		Address:       entity.Address{Street: in.StreetAddress, City: in.City, Postcode: in.PostalCode},
		PaymentMethod: in.PaymentMethod,
		Status:        defaultString(in.Status, "active"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List returns every shop account.
func (uc *BranchUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.ListByRole(ctx, entity.RoleBranch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetByID returns a shop account.
func (uc *BranchUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Update overwrites the account details. The password is not touched here.
func (uc *BranchUseCase) Update(ctx context.Context, in dto.UpdateBranchRequest) (*dto.UserResponse, error) {
	u, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	u.Firstname = strings.TrimSpace(in.Name)
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	u.Address = entity.Address{Street: in.StreetAddress, City: in.City, Postcode: in.PostalCode}
	u.Role = defaultString(in.Role, u.Role)
	u.PaymentMethod = in.PaymentMethod
	u.Status = defaultString(in.Status, u.Status)
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete removes a shop account with its addresses, cards and delivery schedules.
// Accounts with orders are kept (domain.ErrConflict).
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

func (uc *BranchUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsBranch() {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
