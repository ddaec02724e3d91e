package dto

import "time"

// AuditLogResponse entrada de auditoría para listar.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
}

// AuditListResponse lista paginada de auditoría, del más reciente al más antiguo.
type AuditListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
