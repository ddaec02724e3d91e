package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// UseCase registra movimientos de almacén (entrada/salida) de forma
// transaccional: mutación del stock + append del historial como una sola
// unidad, y entrada de auditoría al confirmar. Dos salidas terminales por
// request: aplicado o rechazado sin cambio de estado.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	auditor  Auditor
}

// NewUseCase construye el motor de movimientos.
func NewUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, auditor Auditor) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, auditor: auditor}
}

// orNA devuelve "N/A" si el campo viene vacío (formato del historial).
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// RegisterEntry registra una entrada: valida cantidad e ítem, suma stock y
// agrega el registro Entry en la misma transacción, luego audita.
func (uc *UseCase) RegisterEntry(ctx context.Context, in dto.EntryRequest, actingUser string) (*dto.MovementResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	details := fmt.Sprintf("Fornecedor: %s. NF: %s. Obs: %s",
		orNA(in.Supplier), orNA(in.InvoiceRef), orNA(in.Observations))

	var newStock int64
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		historyRepo repository.ItemHistoryRepository,
	) error {
		newStock, err = itemRepo.Increment(in.ItemID, in.Quantity)
		if err != nil {
			return err
		}
		// El append falla -> la transacción revierte la suma: sin registro
		// de historial no queda mutación del stock.
		return historyRepo.Append(&entity.EntryHistory{
			HistoryRecord: entity.HistoryRecord{
				ID:       uuid.New().String(),
				ItemID:   in.ItemID,
				Date:     now,
				Quantity: in.Quantity,
				User:     actingUser,
			},
			Details: details,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Record(actingUser, fmt.Sprintf(
		"Registrou entrada de %d unidade(s) do item %s. NF: %s.",
		in.Quantity, item.Code, orNA(in.InvoiceRef)))

	return &dto.MovementResult{ItemID: item.ID, ItemCode: item.Code, NewStock: newStock}, nil
}

// RegisterExit registra una salida. La verificación de suficiencia y la
// resta son una sola operación atómica en el repositorio, de modo que dos
// salidas concurrentes sobre el mismo ítem no pueden dejar stock negativo.
func (uc *UseCase) RegisterExit(ctx context.Context, in dto.ExitRequest, actingUser string) (*dto.MovementResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var newStock int64
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		historyRepo repository.ItemHistoryRepository,
	) error {
		newStock, err = itemRepo.DecrementIfAvailable(in.ItemID, in.Quantity)
		if err != nil {
			return err
		}
		return historyRepo.Append(&entity.ExitHistory{
			HistoryRecord: entity.HistoryRecord{
				ID:       uuid.New().String(),
				ItemID:   in.ItemID,
				Date:     now,
				Quantity: in.Quantity,
				User:     actingUser,
			},
			Requester:   in.Requester,
			Responsible: in.Responsible,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Record(actingUser, fmt.Sprintf(
		"Registrou saída de %d unidade(s) do item %s para %s.",
		in.Quantity, item.Code, in.Requester))

	return &dto.MovementResult{ItemID: item.ID, ItemCode: item.Code, NewStock: newStock}, nil
}
