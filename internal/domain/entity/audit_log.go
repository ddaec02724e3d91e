package entity

import "time"

// AuditLog es una entrada del registro de auditoría: descripción legible de
// una acción mutadora, correlacionada con el usuario que la ejecutó.
// Append-only; se lista del más reciente al más antiguo.
type AuditLog struct {
	ID        string
	Timestamp time.Time
	User      string
	Action    string
}
