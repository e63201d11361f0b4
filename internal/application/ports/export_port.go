package ports

import "github.com/jhoicas/wholesale-api/internal/application/dto"

// ReportExporter renders a sales report as a spreadsheet.
type ReportExporter interface {
	ExportReport(report *dto.ReportResponse) ([]byte, error)
	// ContentType of the produced document.
	ContentType() string
	// Extension of the produced file, without the dot.
	Extension() string
}
