package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/movement"
	"github.com/alumasa/almoxarifado-api/internal/domain"
)

// InventoryHandler maneja la conciliación de inventario físico (protegido).
type InventoryHandler struct {
	uc *movement.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *movement.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ComputeDivergence godoc
// @Summary      Calcular divergencias de un conteo físico
// @Description  No modifica el stock: solo compara el conteo contra el stock
//               del sistema y calcula el impacto monetario.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CountedItem  true  "Conteos por ítem"
// @Success      200   {object}  dto.DivergenceReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/divergences [post]
func (h *InventoryHandler) ComputeDivergence(c *fiber.Ctx) error {
	var counts []dto.CountedItem
	if err := c.BodyParser(&counts); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ComputeDivergence(counts)
	if err != nil {
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "el conteo no puede ser negativo"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem del conteo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ApplyAdjustments godoc
// @Summary      Aplicar ajustes de inventario (conteo confirmado)
// @Description  Cada ítem se ajusta en su propia transacción; la respuesta
//               trae todos los aplicados y todos los fallidos, nunca solo el
//               primer error.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentBatch  true  "Lote de ajustes"
// @Success      200   {object}  dto.AdjustmentReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) ApplyAdjustments(c *fiber.Ctx) error {
	var in dto.AdjustmentBatch
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Counts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote de ajustes está vacío"})
	}
	out, err := h.uc.ApplyAdjustments(c.Context(), in, GetUserName(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
