package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BackupFile es el snapshot completo serializado a JSON. El mismo shape se
// exporta y se acepta en la restauración; las cinco secciones son
// obligatorias para que un restore sea válido.
type BackupFile struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Items       []BackupItem         `json:"stock_items"`
	Suppliers   []SupplierResponse   `json:"suppliers"`
	Users       []BackupUser         `json:"users"`
	History     []HistoryEntryResponse `json:"history"`
	AuditLogs   []AuditLogResponse   `json:"audit_logs"`
}

// BackupItem ítem dentro del snapshot (incluye SystemStock tal cual).
type BackupItem struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Equipment    string          `json:"equipment"`
	Location     string          `json:"location"`
	Unit         string          `json:"unit"`
	SystemStock  int64           `json:"system_stock"`
	InitialStock int64           `json:"initial_stock"`
	MinStock     int64           `json:"min_stock"`
	Value        decimal.Decimal `json:"value"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BackupUser usuario dentro del snapshot (con hash, para restaurar login).
type BackupUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Profile      string    `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
