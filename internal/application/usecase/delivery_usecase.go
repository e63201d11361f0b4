package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

// DeliveryUseCase weekly delivery schedules between suppliers and branches.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	users      repository.UserRepository
	suppliers  repository.SupplierRepository
}

// NewDeliveryUseCase builds the use case.
func NewDeliveryUseCase(deliveries repository.DeliveryRepository, users repository.UserRepository, suppliers repository.SupplierRepository) *DeliveryUseCase {
	return &DeliveryUseCase{deliveries: deliveries, users: users, suppliers: suppliers}
}

// Create adds a schedule. A branch has at most one schedule per supplier.
func (uc *DeliveryUseCase) Create(ctx context.Context, in dto.DeliveryRequest) (*dto.DeliveryResponse, error) {
	days, err := NormalizeWeekdays(in.Days)
	if err != nil {
		return nil, err
	}
	branch, supplier, err := uc.refs(ctx, in.Branch, in.Supplier)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Delivery{
		ID:         uuid.New().String(),
		BranchID:   branch.ID,
		SupplierID: supplier.ID,
		Days:       days,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d, branch, supplier), nil
}

// Update replaces branch, supplier and days of a schedule.
func (uc *DeliveryUseCase) Update(ctx context.Context, id string, in dto.DeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	days, err := NormalizeWeekdays(in.Days)
	if err != nil {
		return nil, err
	}
	branch, supplier, err := uc.refs(ctx, in.Branch, in.Supplier)
	if err != nil {
		return nil, err
	}
	d.BranchID, d.SupplierID, d.Days = branch.ID, supplier.ID, days
	d.UpdatedAt = time.Now()
	if err := uc.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d, branch, supplier), nil
}

// List returns every schedule with branch and supplier populated.
func (uc *DeliveryUseCase) List(ctx context.Context) ([]dto.DeliveryResponse, error) {
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		resp, err := uc.populate(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetByID returns one schedule.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.populate(ctx, d)
}

// GetForBranch returns the schedule of the branch with a supplier.
func (uc *DeliveryUseCase) GetForBranch(ctx context.Context, branchID, supplierID string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveries.GetByBranchAndSupplier(ctx, branchID, supplierID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.populate(ctx, d)
}

// Delete removes a schedule.
func (uc *DeliveryUseCase) Delete(ctx context.Context, id string) error {
	return uc.deliveries.Delete(ctx, id)
}

func (uc *DeliveryUseCase) get(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *DeliveryUseCase) refs(ctx context.Context, branchID, supplierID string) (*entity.User, *entity.Supplier, error) {
	branch, err := uc.users.GetByID(ctx, branchID)
	if err != nil {
		return nil, nil, err
	}
	if branch == nil || !branch.IsBranch() {
		return nil, nil, fmt.Errorf("%w: branch", domain.ErrNotFound)
	}
	supplier, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	if supplier == nil {
		return nil, nil, fmt.Errorf("%w: supplier", domain.ErrNotFound)
	}
	return branch, supplier, nil
}

func (uc *DeliveryUseCase) populate(ctx context.Context, d *entity.Delivery) (*dto.DeliveryResponse, error) {
	branch, err := uc.users.GetByID(ctx, d.BranchID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.suppliers.GetByID(ctx, d.SupplierID)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(d, branch, supplier), nil
}

func toDeliveryResponse(d *entity.Delivery, branch *entity.User, supplier *entity.Supplier) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:        d.ID,
		Branch:    toUserSummary(branch),
		Supplier:  toSupplierSummary(supplier),
		Days:      d.Days,
		CreatedAt: d.CreatedAt,
	}
}

// NormalizeWeekdays canonicalises weekday names ("monday" → "Monday"), drops duplicates and
// returns them in calendar order. Unknown names are ErrInvalidInput.
func NormalizeWeekdays(days []string) ([]string, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one delivery day is required", domain.ErrInvalidInput)
	}
	picked := make(map[string]bool, len(days))
	for _, raw := range days {
		found := false
		for _, wd := range entity.Weekdays {
			if strings.EqualFold(strings.TrimSpace(raw), wd) {
				picked[wd] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown weekday %q", domain.ErrInvalidInput, raw)
		}
	}
	out := make([]string, 0, len(picked))
	for _, wd := range entity.Weekdays {
		if picked[wd] {
			out = append(out, wd)
		}
	}
	return out, nil
}
