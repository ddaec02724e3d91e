package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// ReconcileUseCase convierte conteos físicos en ajustes del stock: calcula
// la divergencia y el impacto monetario antes de confirmar, y aplica los
// ajustes con historial y auditoría. El conteo físico confirmado manda
// sobre el stock del sistema.
type ReconcileUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	auditor  Auditor
}

// NewReconcileUseCase construye el caso de uso de conciliación.
func NewReconcileUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, auditor Auditor) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, itemRepo: itemRepo, auditor: auditor}
}

// ComputeDivergence calcula, por ítem contado, counted - system_stock y el
// impacto monetario (divergencia * valor unitario). Ítems con divergencia
// cero quedan fuera del conjunto a ajustar.
func (uc *ReconcileUseCase) ComputeDivergence(counts []dto.CountedItem) (*dto.DivergenceReport, error) {
	report := &dto.DivergenceReport{TotalImpact: decimal.Zero}
	for _, c := range counts {
		if c.Counted < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item, err := uc.itemRepo.GetByID(c.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		divergence := c.Counted - item.SystemStock
		if divergence == 0 {
			continue
		}
		impact := decimal.NewFromInt(divergence).Mul(item.Value)
		report.Rows = append(report.Rows, dto.DivergenceRow{
			ItemID:      item.ID,
			Code:        item.Code,
			Description: item.Description,
			SystemStock: item.SystemStock,
			Counted:     c.Counted,
			Divergence:  divergence,
			UnitValue:   item.Value,
			Impact:      impact,
		})
		report.TotalImpact = report.TotalImpact.Add(impact)
	}
	return report, nil
}

// ApplyAdjustments aplica el lote: por ítem, una transacción propia con
// SetAbsolute + registro Adjustment en el historial, y entrada de auditoría
// "de X para Y". Un ítem que falla no aborta el resto; el resultado reporta
// todos los aplicados y todos los fallidos, nunca solo el primer error.
// Reaplicar el mismo lote es naturalmente idempotente: la segunda vez la
// divergencia de cada ítem es cero y no se ajusta nada.
func (uc *ReconcileUseCase) ApplyAdjustments(ctx context.Context, batch dto.AdjustmentBatch, actingUser string) (*dto.AdjustmentReport, error) {
	report := &dto.AdjustmentReport{}
	for _, c := range batch.Counts {
		outcome := dto.AdjustmentOutcome{ItemID: c.ItemID, ToStock: c.Counted}
		if c.Counted < 0 {
			outcome.Error = domain.ErrInvalidQuantity.Error()
			report.Failed = append(report.Failed, outcome)
			continue
		}
		item, err := uc.itemRepo.GetByID(c.ItemID)
		if err != nil || item == nil {
			if err == nil {
				err = domain.ErrNotFound
			}
			outcome.Error = err.Error()
			report.Failed = append(report.Failed, outcome)
			continue
		}
		outcome.Code = item.Code
		outcome.FromStock = item.SystemStock
		if item.SystemStock == c.Counted {
			// Sin divergencia: fuera del conjunto a ajustar.
			continue
		}

		now := time.Now()
		err = uc.txRunner.Run(ctx, func(
			itemRepo repository.StockItemRepository,
			historyRepo repository.ItemHistoryRepository,
		) error {
			// Releer bajo bloqueo: el stock pudo moverse entre el cálculo
			// de divergencia y la confirmación.
			locked, err := itemRepo.GetForUpdate(c.ItemID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			outcome.FromStock = locked.SystemStock
			if err := itemRepo.SetAbsolute(c.ItemID, c.Counted); err != nil {
				return err
			}
			diff := c.Counted - locked.SystemStock
			if diff < 0 {
				diff = -diff
			}
			if diff == 0 {
				return nil
			}
			return historyRepo.Append(&entity.AdjustmentHistory{
				HistoryRecord: entity.HistoryRecord{
					ID:       uuid.New().String(),
					ItemID:   c.ItemID,
					Date:     now,
					Quantity: diff,
					User:     actingUser,
				},
				PreviousStock: locked.SystemStock,
				CountedStock:  c.Counted,
			})
		})
		if err != nil {
			outcome.Error = err.Error()
			report.Failed = append(report.Failed, outcome)
			continue
		}

		uc.auditor.Record(actingUser, fmt.Sprintf(
			"Ajustou o estoque do item %s de %d para %d (inventário).",
			item.Code, outcome.FromStock, c.Counted))
		report.Applied = append(report.Applied, outcome)
	}
	return report, nil
}
