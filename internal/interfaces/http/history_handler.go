package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
)

// HistoryHandler maneja la consulta del historial por ítem (protegido).
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// ListByItem godoc
// @Summary      Historial de un ítem (del más reciente al más antiguo)
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.HistoryListResponse
// @Router       /api/items/{id}/history [get]
func (h *HistoryHandler) ListByItem(c *fiber.Ctx) error {
	out, err := h.uc.ListByItem(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar el historial de un ítem como CSV
// @Tags         history
// @Security     Bearer
// @Produce      text/csv
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {string}  string  "CSV separado por punto y coma"
// @Router       /api/items/{id}/history/csv [get]
func (h *HistoryHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="historico.csv"`)
	return c.SendString(csv)
}
