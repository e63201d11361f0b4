package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo DeliveryRepository over PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository builds the delivery schedule adapter.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, branch_id, supplier_id, days, created_at, updated_at`

// Create persists a schedule. One schedule per branch and supplier (domain.ErrDuplicate).
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	_, err := r.q.Exec(ctx, `INSERT INTO deliveries (`+deliveryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.BranchID, d.SupplierID, daysOrEmpty(d.Days), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID returns the schedule or nil.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// GetByBranchAndSupplier returns the schedule of a branch with a supplier or nil.
func (r *DeliveryRepo) GetByBranchAndSupplier(ctx context.Context, branchID, supplierID string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE branch_id = $1 AND supplier_id = $2`, branchID, supplierID))
	if err != nil {
		return nil, fmt.Errorf("get delivery by branch and supplier: %w", err)
	}
	return d, nil
}

// Update overwrites branch, supplier and days.
func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE deliveries SET branch_id = $2, supplier_id = $3, days = $4, updated_at = $5 WHERE id = $1`,
		d.ID, d.BranchID, d.SupplierID, daysOrEmpty(d.Days), d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns every schedule, newest first.
func (r *DeliveryRepo) List(ctx context.Context) ([]*entity.Delivery, error) {
	return r.list(ctx, `SELECT `+deliveryColumns+` FROM deliveries ORDER BY created_at DESC`)
}

// ListByBranch returns the schedules of one branch.
func (r *DeliveryRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Delivery, error) {
	return r.list(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE branch_id = $1 ORDER BY created_at DESC`, branchID)
}

// Delete removes a schedule.
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := row.Scan(&d.ID, &d.BranchID, &d.SupplierID, &d.Days, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func daysOrEmpty(d []string) []string {
	if d == nil {
		return []string{}
	}
	return d
}
