package dto

// EntryRequest body para POST /api/movements/entries.
type EntryRequest struct {
	ItemID       string `json:"item_id"`
	Quantity     int64  `json:"quantity"`
	Supplier     string `json:"supplier,omitempty"`
	InvoiceRef   string `json:"invoice_ref,omitempty"` // NF
	Observations string `json:"observations,omitempty"`
}

// ExitRequest body para POST /api/movements/exits.
type ExitRequest struct {
	ItemID      string `json:"item_id"`
	Quantity    int64  `json:"quantity"`
	Requester   string `json:"requester"`
	Responsible string `json:"responsible"`
}

// MovementResult resultado de un movimiento aplicado.
type MovementResult struct {
	ItemID   string `json:"item_id"`
	ItemCode string `json:"item_code"`
	NewStock int64  `json:"new_stock"`
}
