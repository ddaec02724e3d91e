package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
)

type backupFixture struct {
	store   *memory.Store
	items   *memory.ItemStore
	history *memory.HistoryStore
	users   *memory.UserStore
	auditor *fakeAuditor
	uc      *usecase.BackupUseCase
}

func newBackupFixture() *backupFixture {
	store := memory.NewStore()
	auditor := &fakeAuditor{}
	return &backupFixture{
		store:   store,
		items:   memory.NewItemStore(store),
		history: memory.NewHistoryStore(store),
		users:   memory.NewUserStore(store),
		auditor: auditor,
		uc:      usecase.NewBackupUseCase(memory.NewSnapshotStore(store), auditor),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Export / Restore
// ──────────────────────────────────────────────────────────────────────────────

func TestBackup_ExportRestoreRoundtrip(t *testing.T) {
	f := newBackupFixture()
	id := seedStockItem(t, f.items, "BKP-1", "Geral", "A1", 10, 2, 5)
	seedEntryHistory(t, f.history, id, 10)
	require.NoError(t, f.users.Create(&entity.User{
		ID: "user-1", Name: "Maria", Email: "maria@example.com",
		PasswordHash: "$2a$10$hash", Profile: entity.ProfileAdmin,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	backup, err := f.uc.Export("Maria")
	require.NoError(t, err)
	require.Len(t, backup.Items, 1)
	require.Len(t, backup.Users, 1)
	require.Len(t, backup.History, 1)
	assert.Equal(t, "$2a$10$hash", backup.Users[0].PasswordHash,
		"el backup conserva el hash para restaurar el login")

	// Restaurar sobre un sistema con otros datos: el snapshot sustituye todo.
	target := newBackupFixture()
	seedStockItem(t, target.items, "VIEJO-1", "Geral", "Z9", 99, 1, 1)

	require.NoError(t, target.uc.Restore(backup, "Maria"))

	old, err := target.items.GetByCode("VIEJO-1")
	require.NoError(t, err)
	assert.Nil(t, old, "los datos previos desaparecen con la restauración")

	restored, err := target.items.GetByCode("BKP-1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, int64(10), restored.SystemStock)

	hist, err := target.history.ListByItem(id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.HistoryTypeEntry, hist[0].Type())

	user, err := target.users.GetByEmail("maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)

	actions := target.auditor.all()
	require.Len(t, actions, 1)
	assert.Equal(t, "Maria: Sistema restaurado a partir de um backup.", actions[0])
}

func TestBackup_ExportAudita(t *testing.T) {
	f := newBackupFixture()
	_, err := f.uc.Export("Maria")
	require.NoError(t, err)

	actions := f.auditor.all()
	require.Len(t, actions, 1)
	assert.Equal(t, "Maria: Gerou um backup completo do sistema.", actions[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del snapshot
// ──────────────────────────────────────────────────────────────────────────────

// Un JSON sin alguna de las cinco secciones deserializa con slice nil y debe
// rechazarse entero, sin tocar el estado.
func TestRestore_SeccionAusenteRechazada(t *testing.T) {
	f := newBackupFixture()
	seedStockItem(t, f.items, "KEEP-1", "Geral", "A1", 7, 2, 1)

	backup := &dto.BackupFile{
		GeneratedAt: time.Now(),
		Items:       []dto.BackupItem{},
		Suppliers:   []dto.SupplierResponse{},
		Users:       []dto.BackupUser{},
		History:     []dto.HistoryEntryResponse{},
		// AuditLogs ausente (nil)
	}
	err := f.uc.Restore(backup, "Maria")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	kept, _ := f.items.GetByCode("KEEP-1")
	require.NotNil(t, kept, "un restore rechazado no toca nada")
	assert.Equal(t, int64(7), kept.SystemStock)
	assert.Empty(t, f.auditor.all(), "un restore rechazado no audita")
}

func TestRestore_ItemInvalidoRechazado(t *testing.T) {
	f := newBackupFixture()

	backup := emptyBackup()
	backup.Items = []dto.BackupItem{{ID: "x", Code: "NEG-1", SystemStock: -5}}
	assert.ErrorIs(t, f.uc.Restore(backup, "Maria"), domain.ErrInvalidInput,
		"stock negativo viola el invariante también al restaurar")

	backup = emptyBackup()
	backup.Items = []dto.BackupItem{{ID: "", Code: "SIN-ID"}}
	assert.ErrorIs(t, f.uc.Restore(backup, "Maria"), domain.ErrInvalidInput)
}

func TestRestore_HistorialConTipoDesconocidoRechazado(t *testing.T) {
	f := newBackupFixture()

	backup := emptyBackup()
	backup.History = []dto.HistoryEntryResponse{{
		ID: "h1", ItemID: "item-1", Type: "TRANSFER", Date: time.Now(), Quantity: 3,
	}}
	assert.ErrorIs(t, f.uc.Restore(backup, "Maria"), domain.ErrInvalidInput)
}

func TestRestore_HistorialSinItemRechazado(t *testing.T) {
	f := newBackupFixture()

	backup := emptyBackup()
	backup.History = []dto.HistoryEntryResponse{{
		ID: "h1", ItemID: "", Type: entity.HistoryTypeEntry, Date: time.Now(), Quantity: 3,
	}}
	assert.ErrorIs(t, f.uc.Restore(backup, "Maria"), domain.ErrInvalidInput)
}

func emptyBackup() *dto.BackupFile {
	return &dto.BackupFile{
		GeneratedAt: time.Now(),
		Items:       []dto.BackupItem{},
		Suppliers:   []dto.SupplierResponse{},
		Users:       []dto.BackupUser{},
		History:     []dto.HistoryEntryResponse{},
		AuditLogs:   []dto.AuditLogResponse{},
	}
}
