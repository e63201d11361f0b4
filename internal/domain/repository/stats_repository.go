package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardCounts raw dashboard figures produced by the database.
type DashboardCounts struct {
	Suppliers int
	Branches  int
	Orders    int
	Products  int
	Sales     decimal.Decimal // sum of orders.total_price
}

// StatsRepository read-only aggregate queries for the admin dashboard.
type StatsRepository interface {
	GetDashboardCounts(ctx context.Context) (*DashboardCounts, error)
}
