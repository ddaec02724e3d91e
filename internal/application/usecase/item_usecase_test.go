package usecase_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
)

// fakeAuditor acumula las acciones registradas.
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

func newItemFixture() (*memory.Store, *usecase.ItemUseCase, *fakeAuditor) {
	store := memory.NewStore()
	auditor := &fakeAuditor{}
	return store, usecase.NewItemUseCase(memory.NewItemStore(store), auditor), auditor
}

func validCreateReq(code string) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Code:         code,
		Description:  "Parafuso sextavado",
		Category:     "Fixação",
		Location:     "Prateleira B1",
		Unit:         "Unidade",
		InitialStock: 20,
		MinStock:     5,
		Value:        decimal.NewFromFloat(0.75),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_SiembraStockDesdeInicial(t *testing.T) {
	_, uc, auditor := newItemFixture()

	out, err := uc.Create(validCreateReq("PAR-001"), "Maria")
	require.NoError(t, err)
	assert.Equal(t, "PAR-001", out.Code)
	assert.Equal(t, int64(20), out.SystemStock, "SystemStock nace de InitialStock")
	assert.False(t, out.BelowMin)
	assert.NotEmpty(t, out.ID)

	actions := auditor.all()
	require.Len(t, actions, 1)
	assert.Equal(t, "Maria: Criou o item PAR-001 (Parafuso sextavado).", actions[0])
}

func TestItemCreate_CodigoDuplicadoCaseInsensitive(t *testing.T) {
	_, uc, _ := newItemFixture()

	_, err := uc.Create(validCreateReq("PAR-001"), "Maria")
	require.NoError(t, err)

	_, err = uc.Create(validCreateReq("par-001"), "Maria")
	assert.ErrorIs(t, err, domain.ErrDuplicateCode, "el código es único sin distinguir mayúsculas")
}

func TestItemCreate_EntradaInvalida(t *testing.T) {
	_, uc, _ := newItemFixture()

	cases := map[string]func(*dto.CreateItemRequest){
		"código vacío":       func(r *dto.CreateItemRequest) { r.Code = "" },
		"código con espacio": func(r *dto.CreateItemRequest) { r.Code = "PAR 001" },
		"sin descripción":    func(r *dto.CreateItemRequest) { r.Description = "" },
		"sin ubicación":      func(r *dto.CreateItemRequest) { r.Location = "" },
		"unidad desconocida": func(r *dto.CreateItemRequest) { r.Unit = "Docena" },
		"stock negativo":     func(r *dto.CreateItemRequest) { r.InitialStock = -1 },
		"mínimo negativo":    func(r *dto.CreateItemRequest) { r.MinStock = -1 },
		"valor negativo":     func(r *dto.CreateItemRequest) { r.Value = decimal.NewFromInt(-1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCreateReq("PAR-X")
			mutate(&req)
			_, err := uc.Create(req, "Maria")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestItemBulkCreate_FilasInvalidasNoAbortanElLote(t *testing.T) {
	_, uc, _ := newItemFixture()

	bad := validCreateReq("PAR-002")
	bad.Unit = "Docena"
	dup := validCreateReq("PAR-001")

	out, err := uc.BulkCreate(dto.BulkCreateItemsRequest{
		Items: []dto.CreateItemRequest{validCreateReq("PAR-001"), bad, dup, validCreateReq("PAR-003")},
	}, "Maria")
	require.NoError(t, err)
	assert.Len(t, out.Created, 2, "las filas válidas se crean igualmente")
	require.Len(t, out.Errors, 2)
	assert.Equal(t, 2, out.Errors[0].Row, "la fila se reporta con índice 1-based")
	assert.Equal(t, "INVALID", out.Errors[0].Code)
	assert.Equal(t, 3, out.Errors[1].Row)
	assert.Equal(t, "DUPLICATE_CODE", out.Errors[1].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_NoTocaElStock(t *testing.T) {
	_, uc, _ := newItemFixture()
	created, err := uc.Create(validCreateReq("PAR-001"), "Maria")
	require.NoError(t, err)

	desc := "Parafuso allen"
	minStock := int64(8)
	out, err := uc.Update(created.ID, dto.UpdateItemRequest{
		Description: &desc,
		MinStock:    &minStock,
	}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, "Parafuso allen", out.Description)
	assert.Equal(t, int64(8), out.MinStock)
	assert.Equal(t, int64(20), out.SystemStock, "Update nunca modifica SystemStock")
}

func TestItemUpdate_CodigoDuplicado(t *testing.T) {
	_, uc, _ := newItemFixture()
	a, err := uc.Create(validCreateReq("PAR-001"), "Maria")
	require.NoError(t, err)
	_, err = uc.Create(validCreateReq("PAR-002"), "Maria")
	require.NoError(t, err)

	code := "PAR-002"
	_, err = uc.Update(a.ID, dto.UpdateItemRequest{Code: &code}, "Maria")
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestItemUpdate_Inexistente(t *testing.T) {
	_, uc, _ := newItemFixture()
	out, err := uc.Update("fantasma", dto.UpdateItemRequest{}, "Maria")
	require.NoError(t, err)
	assert.Nil(t, out, "inexistente devuelve nil sin error; el handler decide el 404")
}

func TestItemDelete_ConservaElHistorial(t *testing.T) {
	store, uc, _ := newItemFixture()
	created, err := uc.Create(validCreateReq("PAR-001"), "Maria")
	require.NoError(t, err)

	// Historial previo al borrado, claveado por item_id.
	history := memory.NewHistoryStore(store)
	seedEntryHistory(t, history, created.ID, 5)

	require.NoError(t, uc.Delete(created.ID, "Maria"))

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	hist, err := history.ListByItem(created.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "borrar el ítem no borra su historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestItemList_FiltroDeStockBajo(t *testing.T) {
	_, uc, _ := newItemFixture()

	low := validCreateReq("PAR-001")
	low.InitialStock = 3 // <= MinStock 5
	_, err := uc.Create(low, "Maria")
	require.NoError(t, err)
	_, err = uc.Create(validCreateReq("PAR-002"), "Maria")
	require.NoError(t, err)

	out, err := uc.List("", true, 50, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "PAR-001", out.Items[0].Code)
	assert.True(t, out.Items[0].BelowMin)
}

func TestItemList_BusquedaLibre(t *testing.T) {
	_, uc, _ := newItemFixture()

	a := validCreateReq("PAR-001")
	a.Description = "Parafuso sextavado"
	_, err := uc.Create(a, "Maria")
	require.NoError(t, err)

	b := validCreateReq("LUV-001")
	b.Description = "Luva de raspa"
	_, err = uc.Create(b, "Maria")
	require.NoError(t, err)

	out, err := uc.List("luva", false, 50, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "LUV-001", out.Items[0].Code)
}
