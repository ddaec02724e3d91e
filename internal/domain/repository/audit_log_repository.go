package repository

import "github.com/alumasa/almoxarifado-api/internal/domain/entity"

// AuditLogRepository define el puerto append-only del registro de auditoría.
type AuditLogRepository interface {
	Append(log *entity.AuditLog) error
	// ListRecent devuelve entradas del más reciente al más antiguo.
	ListRecent(limit, offset int) ([]*entity.AuditLog, error)
	ExportAll() ([]*entity.AuditLog, error)
}
