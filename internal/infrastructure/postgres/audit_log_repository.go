package postgres

import (
	"context"
	"fmt"

	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación append-only de AuditLogRepository sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append persiste una entrada de auditoría.
func (r *AuditLogRepo) Append(log *entity.AuditLog) error {
	query := `INSERT INTO audit_logs (id, timestamp, user_name, action) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, log.ID, log.Timestamp, log.User, log.Action)
	if err != nil {
		return fmt.Errorf("insert audit_log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) queryLogs(query string, args ...any) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit_logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Timestamp, &l.User, &l.Action); err != nil {
			return nil, fmt.Errorf("scan audit_log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// ListRecent devuelve entradas del más reciente al más antiguo.
func (r *AuditLogRepo) ListRecent(limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, timestamp, user_name, action FROM audit_logs
		ORDER BY timestamp DESC, id DESC LIMIT $1 OFFSET $2`
	return r.queryLogs(query, limit, offset)
}

// ExportAll devuelve todas las entradas (backup).
func (r *AuditLogRepo) ExportAll() ([]*entity.AuditLog, error) {
	query := `SELECT id, timestamp, user_name, action FROM audit_logs ORDER BY timestamp ASC, id ASC`
	return r.queryLogs(query)
}
