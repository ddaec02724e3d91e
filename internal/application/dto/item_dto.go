package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. InitialStock siembra
// SystemStock una sola vez; después el stock solo cambia vía movimientos.
type CreateItemRequest struct {
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Equipment    string          `json:"equipment"`
	Location     string          `json:"location"`
	Unit         string          `json:"unit"`
	InitialStock int64           `json:"initial_stock"`
	MinStock     int64           `json:"min_stock"`
	Value        decimal.Decimal `json:"value"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
}

// UpdateItemRequest entrada para actualizar un ítem (sin SystemStock:
// el stock se maneja vía movimientos y conciliación).
type UpdateItemRequest struct {
	Code        *string          `json:"code"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Equipment   *string          `json:"equipment"`
	Location    *string          `json:"location"`
	Unit        *string          `json:"unit"`
	MinStock    *int64           `json:"min_stock"`
	Value       *decimal.Decimal `json:"value"`
	SupplierID  *string          `json:"supplier_id"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Equipment   string          `json:"equipment"`
	Location    string          `json:"location"`
	Unit        string          `json:"unit"`
	SystemStock int64           `json:"system_stock"`
	MinStock    int64           `json:"min_stock"`
	Value       decimal.Decimal `json:"value"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	BelowMin    bool            `json:"below_min"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// BulkCreateItemsRequest lote de ítems ya parseados (el parsing CSV es del
// cliente; aquí solo se validan filas).
type BulkCreateItemsRequest struct {
	Items []CreateItemRequest `json:"items"`
}

// BulkRowError error de validación de una fila del lote.
type BulkRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkCreateItemsResponse resultado del lote: creados y filas rechazadas.
type BulkCreateItemsResponse struct {
	Created []ItemResponse `json:"created"`
	Errors  []BulkRowError `json:"errors"`
}
