package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// StatsTTL lifetime of cached dashboard figures.
const StatsTTL = 60 * time.Second

// ExportFile a rendered report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase sales reports and dashboard figures for admins.
type ReportUseCase struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	suppliers repository.SupplierRepository
	stats     repository.StatsRepository
	cache     ports.StatsCache
	exporter  ports.ReportExporter
	log       *logger.Logger
	now       func() time.Time
}

// NewReportUseCase builds the use case.
func NewReportUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	suppliers repository.SupplierRepository,
	stats repository.StatsRepository,
	cache ports.StatsCache,
	exporter ports.ReportExporter,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orders:    orders,
		users:     users,
		suppliers: suppliers,
		stats:     stats,
		cache:     cache,
		exporter:  exporter,
		log:       log,
		now:       time.Now,
	}
}

// Report aggregates the orders created within the filter's range.
// Per line: gross = price × quantity, tax = gross × vat / 100, net = gross − tax.
// Figures come from the price and VAT captured when each order was placed.
func (uc *ReportUseCase) Report(ctx context.Context, filter string) (*dto.ReportResponse, error) {
	r, err := ResolveRange(filter, uc.now())
	if err != nil {
		return nil, err
	}
	list, err := uc.orders.ListCreatedBetween(ctx, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("list orders for report: %w", err)
	}

	pop := ordering.NewPopulator(uc.users, uc.suppliers)
	gross, taxes := decimal.Zero, decimal.Zero
	details := make([]dto.OrderReportLine, 0, len(list))
	for _, o := range list {
		orderGross, orderTax := decimal.Zero, decimal.Zero
		for _, it := range o.Items {
			orderGross = orderGross.Add(it.Gross())
			orderTax = orderTax.Add(it.Tax())
		}
		gross = gross.Add(orderGross)
		taxes = taxes.Add(orderTax)

		branch, err := pop.Branch(ctx, o.BranchID)
		if err != nil {
			return nil, err
		}
		items, err := pop.Items(ctx, o.Items)
		if err != nil {
			return nil, err
		}
		details = append(details, dto.OrderReportLine{
			OrderID:    o.ID,
			Branch:     branch,
			Products:   items,
			GrossSales: orderGross.StringFixed(2),
			Taxes:      orderTax.StringFixed(2),
			NetSales:   orderGross.Sub(orderTax).StringFixed(2),
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		})
	}

	return &dto.ReportResponse{
		Filter:    r.Filter,
		StartDate: r.Start,
		EndDate:   r.End,
		Summary: dto.ReportSummary{
			TotalOrders: len(list),
			GrossSales:  gross.StringFixed(2),
			TaxesPaid:   taxes.StringFixed(2),
			NetSales:    gross.Sub(taxes).StringFixed(2),
		},
		OrderDetails: details,
	}, nil
}

// Export renders the filter's report with the configured exporter.
func (uc *ReportUseCase) Export(ctx context.Context, filter string) (*ExportFile, error) {
	rep, err := uc.Report(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.ExportReport(rep)
	if err != nil {
		return nil, fmt.Errorf("export report: %w", err)
	}
	slug := strings.ReplaceAll(strings.ToLower(rep.Filter), " ", "-")
	return &ExportFile{
		Filename:    fmt.Sprintf("sales-report-%s-%s.%s", slug, uc.now().Format("20060102"), uc.exporter.Extension()),
		ContentType: uc.exporter.ContentType(),
		Data:        data,
	}, nil
}

// DashboardStats returns the dashboard counters, served from the cache for up to StatsTTL.
// Cache failures are logged and fall through to the database.
func (uc *ReportUseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	cached, ok, err := uc.cache.Get(ctx, ports.DashboardStatsKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("read dashboard stats cache")
	}
	if ok {
		return cached, nil
	}

	c, err := uc.stats.GetDashboardCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	out := &dto.DashboardStatsResponse{
		Suppliers: c.Suppliers,
		Branches:  c.Branches,
		Orders:    c.Orders,
		Products:  c.Products,
		Sales:     c.Sales,
	}
	if err := uc.cache.Set(ctx, ports.DashboardStatsKey, out, StatsTTL); err != nil {
		uc.log.Warn().Err(err).Msg("write dashboard stats cache")
	}
	return out, nil
}
