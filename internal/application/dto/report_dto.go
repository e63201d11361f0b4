package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummary totals of a sales report. Amounts are fixed to 2 decimals.
type ReportSummary struct {
	TotalOrders int    `json:"totalOrders"`
	GrossSales  string `json:"grossSales"`
	TaxesPaid   string `json:"taxesPaid"`
	NetSales    string `json:"netSales"`
}

// OrderReportLine per-order figures in a sales report.
type OrderReportLine struct {
	OrderID    string              `json:"orderId"`
	Branch     *UserSummary        `json:"branch"`
	Products   []OrderItemResponse `json:"products"`
	GrossSales string              `json:"grossSales"`
	Taxes      string              `json:"taxes"`
	NetSales   string              `json:"netSales"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ReportResponse sales report for a date range.
type ReportResponse struct {
	Filter       string            `json:"filter"`
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	Summary      ReportSummary     `json:"summary"`
	OrderDetails []OrderReportLine `json:"orderDetails"`
}

// DashboardStatsResponse counters shown on the admin dashboard.
type DashboardStatsResponse struct {
	Suppliers int             `json:"suppliers"`
	Branches  int             `json:"branches"`
	Orders    int             `json:"orders"`
	Products  int             `json:"products"`
	Sales     decimal.Decimal `json:"sales"`
}
