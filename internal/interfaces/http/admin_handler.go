package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesale-api/internal/application/reporting"
)

// AdminHandler dashboard figures and sales reports.
type AdminHandler struct {
	uc *reporting.ReportUseCase
}

// NewAdminHandler builds the handler.
func NewAdminHandler(uc *reporting.ReportUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// DashboardStats godoc
// @Summary      Dashboard counters
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Sales report for a date filter
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        filter  path  string  true  "Today, Yesterday, Week to date, Last week, Month to date, Last month, Quarter to date, Last quarter, Year to date, Last year"
// @Success      200     {object}  dto.ReportResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/{filter} [get]
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), c.Params("filter"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ExportReport godoc
// @Summary      Sales report as a spreadsheet
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        filter  path  string  true  "report filter"
// @Success      200
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/{filter}/export [get]
func (h *AdminHandler) ExportReport(c *fiber.Ctx) error {
	file, err := h.uc.Export(c.UserContext(), c.Params("filter"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}
