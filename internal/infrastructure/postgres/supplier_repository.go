package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.HolidayRepository  = (*HolidayRepo)(nil)
)

// SupplierRepo SupplierRepository over PostgreSQL. Reads join the holiday calendar.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository builds the supplier adapter. Pass a pool or a tx.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `
	SELECT s.id, s.icon, s.name, s.email, s.phone, s.street, s.city, s.postcode, s.holiday_id::TEXT,
	       s.status, s.created_at, s.updated_at, h.dates, h.created_at
	FROM suppliers s
	LEFT JOIN holidays h ON h.id = s.holiday_id`

// Create persists a supplier. Duplicate email → domain.ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, icon, name, email, phone, street, city, postcode, holiday_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Icon, s.Name, s.Email, s.Phone, s.Address.Street, s.Address.City, s.Address.Postcode,
		nullIfEmpty(s.HolidayID), s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID returns the supplier with its holidays, or nil.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, supplierSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update overwrites the supplier row.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET icon = $2, name = $3, email = $4, phone = $5, street = $6, city = $7,
			postcode = $8, holiday_id = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Icon, s.Name, s.Email, s.Phone, s.Address.Street, s.Address.City, s.Address.Postcode,
		nullIfEmpty(s.HolidayID), s.Status, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns every supplier ordered by name.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, supplierSelect+` ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete removes the supplier, its holiday calendar, its products and its delivery schedules.
// Order lines keep a reference, so a supplier that was ever ordered from yields ErrConflict.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	var n int
	err := r.q.QueryRow(ctx, `
		WITH gone AS (DELETE FROM suppliers WHERE id = $1 RETURNING holiday_id),
		     calendar AS (DELETE FROM holidays WHERE id IN (SELECT holiday_id FROM gone))
		SELECT count(*) FROM gone`, id).Scan(&n)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasOrders reports whether any order line references the supplier.
func (r *SupplierRepo) HasOrders(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE supplier_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("supplier has orders: %w", err)
	}
	return exists, nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var (
		s         entity.Supplier
		holidayID *string
		dates     []time.Time
		holidayAt *time.Time
	)
	err := row.Scan(
		&s.ID, &s.Icon, &s.Name, &s.Email, &s.Phone, &s.Address.Street, &s.Address.City, &s.Address.Postcode,
		&holidayID, &s.Status, &s.CreatedAt, &s.UpdatedAt, &dates, &holidayAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if holidayID != nil {
		s.HolidayID = *holidayID
		h := &entity.Holiday{ID: *holidayID, Dates: dates}
		if holidayAt != nil {
			h.CreatedAt = *holidayAt
		}
		s.Holidays = h
	}
	return &s, nil
}

// HolidayRepo HolidayRepository over PostgreSQL.
type HolidayRepo struct {
	q Querier
}

// NewHolidayRepository builds the holiday adapter.
func NewHolidayRepository(q Querier) *HolidayRepo {
	return &HolidayRepo{q: q}
}

// Create persists a holiday calendar.
func (r *HolidayRepo) Create(ctx context.Context, h *entity.Holiday) error {
	_, err := r.q.Exec(ctx, `INSERT INTO holidays (id, dates, created_at) VALUES ($1, $2, $3)`,
		h.ID, datesOrEmpty(h.Dates), h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

// GetByID returns the calendar or nil.
func (r *HolidayRepo) GetByID(ctx context.Context, id string) (*entity.Holiday, error) {
	var h entity.Holiday
	err := r.q.QueryRow(ctx, `SELECT id, dates, created_at FROM holidays WHERE id = $1`, id).Scan(&h.ID, &h.Dates, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get holiday: %w", err)
	}
	return &h, nil
}

// Update replaces the calendar dates.
func (r *HolidayRepo) Update(ctx context.Context, h *entity.Holiday) error {
	tag, err := r.q.Exec(ctx, `UPDATE holidays SET dates = $2 WHERE id = $1`, h.ID, datesOrEmpty(h.Dates))
	if err != nil {
		return fmt.Errorf("update holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete drops the calendar; a supplier pointing at it is left without one.
func (r *HolidayRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// datesOrEmpty avoids writing NULL into the NOT NULL array column.
func datesOrEmpty(d []time.Time) []time.Time {
	if d == nil {
		return []time.Time{}
	}
	return d
}
