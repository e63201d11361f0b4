package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo read-only aggregates for the admin dashboard.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository builds the stats adapter.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetDashboardCounts counts suppliers, branches, orders and products and sums order totals in one round trip.
func (r *StatsRepo) GetDashboardCounts(ctx context.Context) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM suppliers)                        AS suppliers,
	    (SELECT COUNT(*) FROM users WHERE role = $1)            AS branches,
	    (SELECT COUNT(*) FROM orders)                           AS orders,
	    (SELECT COUNT(*) FROM products)                         AS products,
	    (SELECT COALESCE(SUM(total_price), 0) FROM orders)      AS sales`

	var c repository.DashboardCounts
	if err := r.q.QueryRow(ctx, query, entity.RoleBranch).Scan(&c.Suppliers, &c.Branches, &c.Orders, &c.Products, &c.Sales); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}
