package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
)

// seedStockItem inserta un ítem directamente en el store y devuelve su ID.
func seedStockItem(t *testing.T, items *memory.ItemStore, code, category, location string, stock, minStock int64, value float64) string {
	t.Helper()
	item := &entity.StockItem{
		ID:          "item-" + code,
		Code:        code,
		Description: "Item " + code,
		Category:    category,
		Location:    location,
		Unit:        "Unidade",
		SystemStock: stock,
		MinStock:    minStock,
		Value:       decimal.NewFromFloat(value),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, items.Create(item))
	return item.ID
}

func seedEntryHistory(t *testing.T, h *memory.HistoryStore, itemID string, qty int64) {
	t.Helper()
	require.NoError(t, h.Append(&entity.EntryHistory{
		HistoryRecord: entity.HistoryRecord{
			ID:       uuid.New().String(),
			ItemID:   itemID,
			Date:     time.Now(),
			Quantity: qty,
			User:     "Maria",
		},
		Details: "Fornecedor: N/A. NF: N/A. Obs: N/A",
	}))
}

func seedExitHistory(t *testing.T, h *memory.HistoryStore, itemID string, qty int64) {
	t.Helper()
	require.NoError(t, h.Append(&entity.ExitHistory{
		HistoryRecord: entity.HistoryRecord{
			ID:       uuid.New().String(),
			ItemID:   itemID,
			Date:     time.Now(),
			Quantity: qty,
			User:     "Maria",
		},
		Requester:   "João",
		Responsible: "Maria",
	}))
}

func seedAdjustmentHistory(t *testing.T, h *memory.HistoryStore, itemID string, from, to int64) {
	t.Helper()
	diff := to - from
	if diff < 0 {
		diff = -diff
	}
	require.NoError(t, h.Append(&entity.AdjustmentHistory{
		HistoryRecord: entity.HistoryRecord{
			ID:       uuid.New().String(),
			ItemID:   itemID,
			Date:     time.Now(),
			Quantity: diff,
			User:     "Maria",
		},
		PreviousStock: from,
		CountedStock:  to,
	}))
}
