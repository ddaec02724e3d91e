package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
	"github.com/alumasa/almoxarifado-api/internal/domain"
)

// ReportHandler maneja los reportes del almoxarifado (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de ítems en o bajo el estoque mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockReport
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStockCSV godoc
// @Summary      Reporte de estoque baixo como CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/low-stock/csv [get]
func (h *ReportHandler) LowStockCSV(c *fiber.Ctx) error {
	csv, err := h.uc.LowStockCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque_baixo.csv"`)
	return c.SendString(csv)
}

// PurchaseOrder godoc
// @Summary      Generar el Pedido de Compra en PDF
// @Description  Recibe las líneas seleccionadas del reporte de estoque baixo
//               con la cantidad a pedir anotada por el operador.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.PurchaseOrderRequest  true  "Líneas del pedido"
// @Success      200   {string}  string  "PDF"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/purchase-order [post]
func (h *ReportHandler) PurchaseOrder(c *fiber.Ctx) error {
	var in dto.PurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdf, err := h.uc.PurchaseOrderPDF(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ninguna línea tiene cantidad a pedir"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedido_de_compra.pdf"`)
	return c.Send(pdf)
}

// Movements godoc
// @Summary      Reporte de movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to    query  string  false  "Fecha final (RFC 3339)"
// @Success      200   {object}  dto.MovementsReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC 3339)"})
	}
	out, err := h.uc.MovementsByPeriod(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ValueByLocation godoc
// @Summary      Valor del stock agrupado por ubicación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationValueReport
// @Router       /api/reports/value-by-location [get]
func (h *ReportHandler) ValueByLocation(c *fiber.Ctx) error {
	out, err := h.uc.ValueByLocation()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ValueByLocationCSV godoc
// @Summary      Valor por ubicación como CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/value-by-location/csv [get]
func (h *ReportHandler) ValueByLocationCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ValueByLocationCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="valor_por_local.csv"`)
	return c.SendString(csv)
}

// Dashboard godoc
// @Summary      Resumen para el panel principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseTimeQuery acepta RFC 3339 completo o solo fecha (2006-01-02).
func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
