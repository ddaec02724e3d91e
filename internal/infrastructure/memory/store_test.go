package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
)

func newItem(code string, stock int64) *entity.StockItem {
	return &entity.StockItem{
		ID:          "item-" + code,
		Code:        code,
		Description: "Item " + code,
		Location:    "A1",
		Unit:        "Unidade",
		SystemStock: stock,
		MinStock:    2,
		Value:       decimal.NewFromInt(1),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Primitivas del libro de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestItemStore_CodigoDuplicadoCaseInsensitive(t *testing.T) {
	items := memory.NewItemStore(memory.NewStore())
	require.NoError(t, items.Create(newItem("ABC-1", 5)))

	dup := newItem("abc-1", 0)
	dup.ID = "item-otro"
	assert.ErrorIs(t, items.Create(dup), domain.ErrDuplicateCode)

	got, err := items.GetByCode("ABC-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	got, err = items.GetByCode("aBc-1")
	require.NoError(t, err)
	assert.NotNil(t, got, "la búsqueda por código tampoco distingue mayúsculas")
}

func TestItemStore_UpdateNoTocaElStock(t *testing.T) {
	items := memory.NewItemStore(memory.NewStore())
	require.NoError(t, items.Create(newItem("ABC-1", 5)))

	mod := newItem("ABC-1", 999) // intento de colar otro stock por Update
	mod.Description = "Descripción nueva"
	require.NoError(t, items.Update(mod))

	got, err := items.GetByID("item-ABC-1")
	require.NoError(t, err)
	assert.Equal(t, "Descripción nueva", got.Description)
	assert.Equal(t, int64(5), got.SystemStock, "el stock solo muta por movimientos")
}

func TestItemStore_DecrementIfAvailable(t *testing.T) {
	items := memory.NewItemStore(memory.NewStore())
	require.NoError(t, items.Create(newItem("ABC-1", 5)))

	newStock, err := items.DecrementIfAvailable("item-ABC-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), newStock)

	_, err = items.DecrementIfAvailable("item-ABC-1", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := items.GetByID("item-ABC-1")
	assert.Equal(t, int64(2), got.SystemStock, "el rechazo no descuenta nada")

	_, err = items.DecrementIfAvailable("fantasma", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Muchos decrementos concurrentes: solo caben floor(stock/qty) y el stock
// nunca queda negativo.
func TestItemStore_DecrementosConcurrentes(t *testing.T) {
	items := memory.NewItemStore(memory.NewStore())
	require.NoError(t, items.Create(newItem("ABC-1", 50)))

	const workers = 20
	var wg sync.WaitGroup
	var okCount int64
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := items.DecrementIfAvailable("item-ABC-1", 7); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(7), okCount, "50 / 7 = 7 decrementos posibles")
	got, _ := items.GetByID("item-ABC-1")
	assert.Equal(t, int64(1), got.SystemStock)
	assert.GreaterOrEqual(t, got.SystemStock, int64(0))
}

func TestHistoryStore_ValidaYOrdena(t *testing.T) {
	store := memory.NewStore()
	history := memory.NewHistoryStore(store)

	err := history.Append(&entity.EntryHistory{HistoryRecord: entity.HistoryRecord{
		ItemID: "", Quantity: 5,
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "historial sin ítem se rechaza")

	err = history.Append(&entity.EntryHistory{HistoryRecord: entity.HistoryRecord{
		ItemID: "item-1", Quantity: 0,
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva se rechaza")

	same := time.Now()
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, history.Append(&entity.EntryHistory{HistoryRecord: entity.HistoryRecord{
			ID: uuid.New().String(), ItemID: "item-1", Date: same, Quantity: i, User: "Maria",
		}}))
	}

	out, err := history.ListByItem("item-1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, int64(3), out[0].Record().Quantity,
		"con la misma fecha desempata el orden de inserción, el último primero")
	assert.Equal(t, int64(1), out[2].Record().Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones simuladas
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraElEstado(t *testing.T) {
	store := memory.NewStore()
	items := memory.NewItemStore(store)
	history := memory.NewHistoryStore(store)
	require.NoError(t, items.Create(newItem("TX-1", 10)))

	boom := errors.New("falla simulada")
	err := memory.NewTxRunner(store).Run(context.Background(), func(
		txItems repository.StockItemRepository,
		txHistory repository.ItemHistoryRepository,
	) error {
		if _, err := txItems.Increment("item-TX-1", 5); err != nil {
			return err
		}
		if err := txHistory.Append(&entity.EntryHistory{HistoryRecord: entity.HistoryRecord{
			ID: uuid.New().String(), ItemID: "item-TX-1", Date: time.Now(), Quantity: 5, User: "Maria",
		}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := items.GetByID("item-TX-1")
	assert.Equal(t, int64(10), got.SystemStock, "el rollback deshace el incremento")
	hist, _ := history.ListByItem("item-TX-1")
	assert.Empty(t, hist, "el rollback deshace también el historial")
}

func TestTxRunner_CommitDejaAmbasMutaciones(t *testing.T) {
	store := memory.NewStore()
	items := memory.NewItemStore(store)
	history := memory.NewHistoryStore(store)
	require.NoError(t, items.Create(newItem("TX-1", 10)))

	err := memory.NewTxRunner(store).Run(context.Background(), func(
		txItems repository.StockItemRepository,
		txHistory repository.ItemHistoryRepository,
	) error {
		if _, err := txItems.Increment("item-TX-1", 5); err != nil {
			return err
		}
		return txHistory.Append(&entity.EntryHistory{HistoryRecord: entity.HistoryRecord{
			ID: uuid.New().String(), ItemID: "item-TX-1", Date: time.Now(), Quantity: 5, User: "Maria",
		}})
	})
	require.NoError(t, err)

	got, _ := items.GetByID("item-TX-1")
	assert.Equal(t, int64(15), got.SystemStock)
	hist, _ := history.ListByItem("item-TX-1")
	assert.Len(t, hist, 1)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := memory.NewTxRunner(store).Run(ctx, func(
		repository.StockItemRepository, repository.ItemHistoryRepository,
	) error {
		t.Fatal("el callback no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
