package movement_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/application/audit"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/movement"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
	"github.com/alumasa/almoxarifado-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeAuditor acumula las acciones registradas para poder verificarlas.
type fakeAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAuditor) Record(actingUser, action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, actingUser+": "+action)
}

func (f *fakeAuditor) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.actions...)
}

type testEnv struct {
	store   *memory.Store
	items   *memory.ItemStore
	history *memory.HistoryStore
	auditor *fakeAuditor
	uc      *movement.UseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	auditor := &fakeAuditor{}
	items := memory.NewItemStore(store)
	uc := movement.NewUseCase(memory.NewTxRunner(store), items, auditor)
	return &testEnv{
		store:   store,
		items:   items,
		history: memory.NewHistoryStore(store),
		auditor: auditor,
		uc:      uc,
	}
}

// seedItem crea un ítem con el stock indicado y devuelve su ID.
func (e *testEnv) seedItem(t *testing.T, code string, stock int64) string {
	t.Helper()
	item := &entity.StockItem{
		ID:          "item-" + code,
		Code:        code,
		Description: "Luva de segurança",
		Location:    "Prateleira A2",
		Unit:        "Unidade",
		SystemStock: stock,
		MinStock:    2,
		Value:       decimal.NewFromFloat(12.50),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, e.items.Create(item), "el ítem de prueba debe crearse")
	return item.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterEntry_SumaStockYRegistraHistorial(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-001", 10)

	out, err := env.uc.RegisterEntry(context.Background(), dto.EntryRequest{
		ItemID:     id,
		Quantity:   5,
		Supplier:   "Ferragens Silva",
		InvoiceRef: "NF-1234",
	}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, int64(15), out.NewStock, "10 + 5 debe dar 15")

	item, err := env.items.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(15), item.SystemStock)

	hist, err := env.history.ListByItem(id)
	require.NoError(t, err)
	require.Len(t, hist, 1, "la entrada debe dejar exactamente un registro")
	assert.Equal(t, entity.HistoryTypeEntry, hist[0].Type())
	assert.Equal(t, int64(5), hist[0].Record().Quantity)
	assert.Equal(t, "Maria", hist[0].Record().User)

	entry, ok := hist[0].(*entity.EntryHistory)
	require.True(t, ok)
	assert.Equal(t, "Fornecedor: Ferragens Silva. NF: NF-1234. Obs: N/A", entry.Details,
		"los campos vacíos del detalle se rellenan con N/A")

	actions := env.auditor.all()
	require.Len(t, actions, 1)
	assert.Equal(t, "Maria: Registrou entrada de 5 unidade(s) do item EPI-001. NF: NF-1234.", actions[0])
}

func TestRegisterEntry_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-001", 10)

	for _, qty := range []int64{0, -3} {
		_, err := env.uc.RegisterEntry(context.Background(), dto.EntryRequest{
			ItemID: id, Quantity: qty,
		}, "Maria")
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}

	item, _ := env.items.GetByID(id)
	assert.Equal(t, int64(10), item.SystemStock, "el stock no debe cambiar")
	hist, _ := env.history.ListByItem(id)
	assert.Empty(t, hist, "un rechazo no deja historial")
	assert.Empty(t, env.auditor.all(), "un rechazo no deja auditoría")
}

func TestRegisterEntry_ItemInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.RegisterEntry(context.Background(), dto.EntryRequest{
		ItemID: "no-existe", Quantity: 1,
	}, "Maria")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterExit_DescuentaStockYRegistraHistorial(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-002", 10)

	out, err := env.uc.RegisterExit(context.Background(), dto.ExitRequest{
		ItemID:      id,
		Quantity:    4,
		Requester:   "João",
		Responsible: "Maria",
	}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.NewStock)

	hist, err := env.history.ListByItem(id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.HistoryTypeExit, hist[0].Type())

	exit, ok := hist[0].(*entity.ExitHistory)
	require.True(t, ok)
	assert.Equal(t, "João", exit.Requester)
	assert.Equal(t, "Maria", exit.Responsible)

	actions := env.auditor.all()
	require.Len(t, actions, 1)
	assert.Equal(t, "Maria: Registrou saída de 4 unidade(s) do item EPI-002 para João.", actions[0])
}

func TestRegisterExit_StockInsuficiente_SinCambioDeEstado(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-003", 3)

	_, err := env.uc.RegisterExit(context.Background(), dto.ExitRequest{
		ItemID: id, Quantity: 5, Requester: "João", Responsible: "Maria",
	}, "Maria")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, _ := env.items.GetByID(id)
	assert.Equal(t, int64(3), item.SystemStock, "el rechazo no debe tocar el stock")
	hist, _ := env.history.ListByItem(id)
	assert.Empty(t, hist, "el rechazo no deja historial")
	assert.Empty(t, env.auditor.all(), "el rechazo no deja auditoría")
}

// Dos salidas concurrentes que juntas exceden el stock: exactamente una debe
// aplicarse y el stock nunca queda negativo.
func TestRegisterExit_SalidasConcurrentes_NuncaNegativo(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-004", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.RegisterExit(context.Background(), dto.ExitRequest{
				ItemID: id, Quantity: 7, Requester: fmt.Sprintf("op-%d", i), Responsible: "Maria",
			}, "Maria")
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una de las dos salidas debe aplicarse")

	item, _ := env.items.GetByID(id)
	assert.Equal(t, int64(3), item.SystemStock, "10 - 7 = 3; nunca negativo")

	hist, _ := env.history.ListByItem(id)
	assert.Len(t, hist, 1, "solo la salida aplicada deja historial")
}

// El historial se lista del más reciente al más antiguo.
func TestHistorial_OrdenDescendente(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedItem(t, "EPI-005", 0)

	for i := 1; i <= 3; i++ {
		_, err := env.uc.RegisterEntry(context.Background(), dto.EntryRequest{
			ItemID: id, Quantity: int64(i),
		}, "Maria")
		require.NoError(t, err)
	}

	hist, err := env.history.ListByItem(id)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, int64(3), hist[0].Record().Quantity, "la última entrada va primero")
	assert.Equal(t, int64(1), hist[2].Record().Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría best-effort
// ──────────────────────────────────────────────────────────────────────────────

// failingAuditRepo rechaza cada Append, como un backend de auditoría caído.
type failingAuditRepo struct{}

func (failingAuditRepo) Append(_ *entity.AuditLog) error {
	return errors.New("backend de auditoría indisponible")
}
func (failingAuditRepo) ListRecent(_, _ int) ([]*entity.AuditLog, error) { return nil, nil }
func (failingAuditRepo) ExportAll() ([]*entity.AuditLog, error)          { return nil, nil }

// Un fallo al escribir auditoría no debe revertir ni bloquear el movimiento.
func TestRegisterExit_AuditoriaCaida_ElMovimientoIgualSeAplica(t *testing.T) {
	store := memory.NewStore()
	items := memory.NewItemStore(store)
	recorder := audit.NewRecorder(failingAuditRepo{}, logger.New(logger.Config{
		Env: "production", Level: "error",
	}))
	uc := movement.NewUseCase(memory.NewTxRunner(store), items, recorder)

	require.NoError(t, items.Create(&entity.StockItem{
		ID: "item-EPI-009", Code: "EPI-009", Description: "Capacete",
		Location: "Prateleira B1", Unit: "Unidade", SystemStock: 10, MinStock: 2,
		Value: decimal.NewFromFloat(30), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	out, err := uc.RegisterExit(context.Background(), dto.ExitRequest{
		ItemID: "item-EPI-009", Quantity: 4, Requester: "João", Responsible: "Maria",
	}, "Maria")
	require.NoError(t, err, "la salida no debe fallar por la auditoría")
	assert.Equal(t, int64(6), out.NewStock)

	item, err := items.GetByID("item-EPI-009")
	require.NoError(t, err)
	assert.Equal(t, int64(6), item.SystemStock)

	hist, err := memory.NewHistoryStore(store).ListByItem("item-EPI-009")
	require.NoError(t, err)
	assert.Len(t, hist, 1, "el historial del movimiento sí se confirma")
}
