package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
	"github.com/alumasa/almoxarifado-api/pkg/logger"
)

// Recorder escribe el registro de auditoría. La escritura es síncrona pero
// best-effort: un fallo se registra en el log y NO revierte ni bloquea la
// operación de negocio que lo disparó.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record agrega una entrada de auditoría para la acción del usuario.
func (r *Recorder) Record(actingUser, action string) {
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		User:      actingUser,
		Action:    action,
	}
	if err := r.repo.Append(entry); err != nil {
		r.log.Warn().Err(err).
			Str("user", actingUser).
			Str("action", action).
			Msg("escritura de auditoría falló; la operación de negocio no se revierte")
	}
}

// List devuelve entradas de auditoría, de la más reciente a la más antigua.
func (r *Recorder) List(limit, offset int) (*dto.AuditListResponse, error) {
	logs, err := r.repo.ListRecent(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:        l.ID,
			Timestamp: l.Timestamp,
			User:      l.User,
			Action:    l.Action,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
