package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/reports"
)

// ReportHandler maneja los reportes diarios (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Daily godoc
// @Summary      Reporte diario de ingresos o ganancia
// @Description  Serie por día calendario; los días sin pedidos aparecen en 0.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        metric      query  string  false  "revenue | profit"  default(revenue)
// @Param        period      query  string  false  "week | month | quarter | year"
// @Param        from        query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200  {object}  dto.DailyReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	in := dto.DailyReportRequest{
		ProductID: c.Query("product_id"),
		Metric:    c.Query("metric"),
		Period:    c.Query("period"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.Daily(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
