package audit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumasa/almoxarifado-api/internal/application/audit"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
	"github.com/alumasa/almoxarifado-api/pkg/logger"
)

// brokenAuditRepo falla en cada Append, como un backend de auditoría caído.
type brokenAuditRepo struct {
	attempts int
}

func (b *brokenAuditRepo) Append(_ *entity.AuditLog) error {
	b.attempts++
	return errors.New("backend de auditoría indisponible")
}

func (b *brokenAuditRepo) ListRecent(_, _ int) ([]*entity.AuditLog, error) {
	return nil, nil
}

func (b *brokenAuditRepo) ExportAll() ([]*entity.AuditLog, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Best-effort: un fallo de escritura jamás se propaga al caller
// ──────────────────────────────────────────────────────────────────────────────

func TestRecorder_AppendFallido_NoPropagaNiPaniquea(t *testing.T) {
	repo := &brokenAuditRepo{}
	rec := audit.NewRecorder(repo, testLogger())

	assert.NotPanics(t, func() {
		rec.Record("Maria Souza", "Registrou entrada de 5 unidade(s) do item EPI-001. NF: NF-1.")
	}, "Record debe absorber el fallo del repositorio")

	assert.Equal(t, 1, repo.attempts, "el Append sí debe intentarse")

	// Fallos repetidos tampoco cambian el contrato.
	rec.Record("Maria Souza", "Gerou um backup completo do sistema.")
	assert.Equal(t, 2, repo.attempts)
}

func TestRecorder_Record_GuardaUsuarioYAccion(t *testing.T) {
	store := memory.NewStore()
	audits := memory.NewAuditStore(store)
	rec := audit.NewRecorder(audits, testLogger())

	rec.Record("João Pereira", "Ajustou o estoque do item EPI-001 de 10 para 7 (inventário).")

	logs, err := audits.ListRecent(10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.False(t, logs[0].Timestamp.IsZero())
	assert.Equal(t, "João Pereira", logs[0].User)
	assert.Equal(t, "Ajustou o estoque do item EPI-001 de 10 para 7 (inventário).", logs[0].Action)
}

func TestRecorder_List_MapeaYPagina(t *testing.T) {
	store := memory.NewStore()
	audits := memory.NewAuditStore(store)
	rec := audit.NewRecorder(audits, testLogger())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, audits.Append(&entity.AuditLog{
		ID: "log-1", Timestamp: base, User: "Maria Souza", Action: "primeira ação",
	}))
	require.NoError(t, audits.Append(&entity.AuditLog{
		ID: "log-2", Timestamp: base.Add(time.Minute), User: "Maria Souza", Action: "segunda ação",
	}))

	out, err := rec.List(1, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "segunda ação", out.Items[0].Action, "del más reciente al más antiguo")
	assert.Equal(t, 1, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Offset)
}
