package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ttacon/libphonenumber"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// MaxIconBytes upper bound for supplier and category images.
const MaxIconBytes = 2 << 20

// DefaultPhoneRegion region assumed for phone numbers without an international prefix.
const DefaultPhoneRegion = "GB"

// SupplierUseCase supplier catalog management and holiday calendars.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	holidays  repository.HolidayRepository
	images    ports.ImageStore
	log       *logger.Logger
}

// NewSupplierUseCase builds the use case.
func NewSupplierUseCase(
	suppliers repository.SupplierRepository,
	holidays repository.HolidayRepository,
	images ports.ImageStore,
	log *logger.Logger,
) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, holidays: holidays, images: images, log: log}
}

// Create stores a supplier, its icon and its holiday calendar.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierInput) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     phone,
		Address:   entity.Address{Street: in.StreetAddress, City: in.City, Postcode: in.Postcode},
		Status:    defaultString(in.Status, "active"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Icon != nil {
		if s.Icon, err = uc.saveIcon(ctx, in.Icon); err != nil {
			return nil, err
		}
	}
	if len(in.Holidays) > 0 {
		h := &entity.Holiday{ID: uuid.New().String(), Dates: in.Holidays, CreatedAt: now}
		if err := uc.holidays.Create(ctx, h); err != nil {
			discardImage(ctx, uc.images, uc.log, s.Icon)
			return nil, err
		}
		s.HolidayID = h.ID
		s.Holidays = h
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		discardImage(ctx, uc.images, uc.log, s.Icon)
		if s.HolidayID != "" {
			uc.dropCalendar(ctx, s.HolidayID)
		}
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update applies a partial update: blank fields keep their stored value.
func (uc *SupplierUseCase) Update(ctx context.Context, in dto.SupplierInput) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		s.Name = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		s.Email = strings.ToLower(v)
	}
	if strings.TrimSpace(in.Phone) != "" {
		if s.Phone, err = NormalizePhone(in.Phone); err != nil {
			return nil, err
		}
	}
	if in.StreetAddress != "" {
		s.Address.Street = in.StreetAddress
	}
	if in.City != "" {
		s.Address.City = in.City
	}
	if in.Postcode != "" {
		s.Address.Postcode = in.Postcode
	}
	s.Status = defaultString(in.Status, s.Status)

	oldIcon, newIcon := "", ""
	if in.Icon != nil {
		if newIcon, err = uc.saveIcon(ctx, in.Icon); err != nil {
			return nil, err
		}
		oldIcon, s.Icon = s.Icon, newIcon
	}
	undo := func(context.Context) {}
	if in.HolidaysSet {
		if undo, err = uc.replaceHolidays(ctx, s, in.Holidays); err != nil {
			discardImage(ctx, uc.images, uc.log, newIcon)
			return nil, err
		}
	}
	s.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		discardImage(ctx, uc.images, uc.log, newIcon)
		undo(ctx)
		return nil, err
	}
	discardImage(ctx, uc.images, uc.log, oldIcon)
	return toSupplierResponse(s), nil
}

// List returns every supplier with its holidays.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// GetByID returns one supplier.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// SetHolidays replaces the supplier's holiday calendar.
func (uc *SupplierUseCase) SetHolidays(ctx context.Context, in dto.SetHolidayRequest) (*dto.SupplierResponse, error) {
	dates, err := ParseHolidayDates(in.NewHolidays)
	if err != nil {
		return nil, err
	}
	s, err := uc.get(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	undo, err := uc.replaceHolidays(ctx, s, dates)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		undo(ctx)
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete removes a supplier with its holidays, products and schedules. Suppliers present in orders are kept (ErrConflict).
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	hasOrders, err := uc.suppliers.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		return fmt.Errorf("%w: supplier has orders", domain.ErrConflict)
	}
	if err := uc.suppliers.Delete(ctx, id); err != nil {
		return err
	}
	discardImage(ctx, uc.images, uc.log, s.Icon)
	return nil
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// replaceHolidays overwrites the calendar, creating it on first use. The returned func
// puts the stored calendar back and is called when the supplier write that follows fails.
func (uc *SupplierUseCase) replaceHolidays(ctx context.Context, s *entity.Supplier, dates []time.Time) (func(context.Context), error) {
	if s.Holidays != nil && s.HolidayID != "" {
		prev := *s.Holidays
		next := prev
		next.Dates = dates
		if err := uc.holidays.Update(ctx, &next); err != nil {
			return nil, err
		}
		s.Holidays = &next
		return func(ctx context.Context) {
			if err := uc.holidays.Update(ctx, &prev); err != nil {
				uc.log.Warn().Err(err).Str("holiday_id", prev.ID).Msg("restore holiday calendar")
			}
		}, nil
	}
	h := &entity.Holiday{ID: uuid.New().String(), Dates: dates, CreatedAt: time.Now()}
	if err := uc.holidays.Create(ctx, h); err != nil {
		return nil, err
	}
	s.HolidayID = h.ID
	s.Holidays = h
	return func(ctx context.Context) { uc.dropCalendar(ctx, h.ID) }, nil
}

func (uc *SupplierUseCase) dropCalendar(ctx context.Context, id string) {
	if err := uc.holidays.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("holiday_id", id).Msg("delete holiday calendar")
	}
}

func (uc *SupplierUseCase) saveIcon(ctx context.Context, f *dto.FileUpload) (string, error) {
	if len(f.Data) > MaxIconBytes {
		return "", fmt.Errorf("%w: image must be at most 2MB", domain.ErrInvalidInput)
	}
	return uc.images.Save(ctx, "suppliers", *f)
}

// NormalizePhone formats a phone number as E.164, assuming DefaultPhoneRegion for national numbers.
// An empty number stays empty.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
