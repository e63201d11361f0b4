package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

const (
	summarySheet = "Summary"
	ordersSheet  = "Orders"
)

var orderHeadings = []interface{}{"Order ID", "Branch", "Email", "Status", "Created", "Lines", "Gross", "Taxes", "Net"}

// ReportExporter writes sales reports as XLSX workbooks.
type ReportExporter struct{}

var _ ports.ReportExporter = ReportExporter{}

func NewReportExporter() ReportExporter { return ReportExporter{} }

func (ReportExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (ReportExporter) Extension() string { return "xlsx" }

// ExportReport produces a workbook with a summary sheet and one row per order.
func (ReportExporter) ExportReport(report *dto.ReportResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("excel: nil report")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Filter", report.Filter},
		{"From", report.StartDate.Format("2006-01-02 15:04")},
		{"To", report.EndDate.Format("2006-01-02 15:04")},
		{"Total orders", report.Summary.TotalOrders},
		{"Gross sales", amount(report.Summary.GrossSales)},
		{"Taxes paid", amount(report.Summary.TaxesPaid)},
		{"Net sales", amount(report.Summary.NetSales)},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A7", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "B5", "B7", money); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(summarySheet, "A", "B", 22)

	if err := f.SetSheetRow(ordersSheet, "A1", &orderHeadings); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(ordersSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, line := range report.OrderDetails {
		branch, email := "", ""
		if line.Branch != nil {
			branch, email = line.Branch.Firstname, line.Branch.Email
		}
		row := []interface{}{
			line.OrderID,
			branch,
			email,
			line.Status,
			line.CreatedAt.Format("2006-01-02 15:04"),
			len(line.Products),
			amount(line.GrossSales),
			amount(line.Taxes),
			amount(line.NetSales),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if n := len(report.OrderDetails); n > 0 {
		if err := f.SetCellStyle(ordersSheet, "G2", fmt.Sprintf("I%d", n+1), money); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(ordersSheet, "A", "A", 38)
	_ = f.SetColWidth(ordersSheet, "B", "E", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// amount turns a 2-decimal string into a number cell; unparsable values stay text.
func amount(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
