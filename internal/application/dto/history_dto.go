package dto

import "time"

// HistoryEntryResponse registro del historial de un ítem. Los campos de
// variante van según Type: details en entradas, requester/responsible en
// salidas, previous/counted en ajustes.
type HistoryEntryResponse struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"item_id"`
	Type     string    `json:"type"` // ENTRY, EXIT, ADJUSTMENT
	Date     time.Time `json:"date"`
	Quantity int64     `json:"quantity"`
	User     string    `json:"user"`

	Details     string `json:"details,omitempty"`
	Requester   string `json:"requester,omitempty"`
	Responsible string `json:"responsible,omitempty"`

	PreviousStock *int64 `json:"previous_stock,omitempty"`
	CountedStock  *int64 `json:"counted_stock,omitempty"`
}

// HistoryListResponse historial de un ítem, del más reciente al más antiguo.
type HistoryListResponse struct {
	ItemID string                 `json:"item_id"`
	Items  []HistoryEntryResponse `json:"items"`
}
