package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow fila del reporte de ítems en o bajo el mínimo.
type LowStockRow struct {
	ItemID      string `json:"item_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	SystemStock int64  `json:"system_stock"`
	MinStock    int64  `json:"min_stock"`
	Supplier    string `json:"supplier,omitempty"`
}

// LowStockReport reporte de estoque baixo.
type LowStockReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Rows        []LowStockRow `json:"rows"`
}

// PurchaseOrderLine línea del pedido de compra impreso desde el reporte de
// estoque baixo: el operador anota qué pedir por ítem.
type PurchaseOrderLine struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Supplier    string `json:"supplier,omitempty"`
	OrderNote   string `json:"order_note"` // ej. "Pedir 2 caixas"
}

// PurchaseOrderRequest líneas seleccionadas para el PDF del pedido.
type PurchaseOrderRequest struct {
	Lines []PurchaseOrderLine `json:"lines"`
}

// MovementRow fila del reporte de movimientos por período.
type MovementRow struct {
	ItemID      string    `json:"item_id"`
	Type        string    `json:"type"` // ENTRY, EXIT, ADJUSTMENT
	Quantity    int64     `json:"quantity"`
	Date        time.Time `json:"date"`
	User        string    `json:"user"`
	Description string    `json:"description,omitempty"`
}

// TopConsumedRow ítem más consumido (suma de salidas) en el período.
type TopConsumedRow struct {
	ItemID   string `json:"item_id"`
	Code     string `json:"code"`
	Quantity int64  `json:"quantity"`
}

// MovementsReport reporte de movimientos por período. Los ajustes se listan
// aparte y no cuentan como entradas ni salidas.
type MovementsReport struct {
	From          *time.Time       `json:"from,omitempty"`
	To            *time.Time       `json:"to,omitempty"`
	TotalEntries  int64            `json:"total_entries"`
	TotalExits    int64            `json:"total_exits"`
	Movements     []MovementRow    `json:"movements"`
	TopConsumed   []TopConsumedRow `json:"top_consumed"`
}

// LocationValueRow valor del stock agrupado por localización.
type LocationValueRow struct {
	Location string          `json:"location"`
	Items    int             `json:"items"`
	Value    decimal.Decimal `json:"value"`
}

// LocationValueReport reporte de valor por local.
type LocationValueReport struct {
	Rows  []LocationValueRow `json:"rows"`
	Total decimal.Decimal    `json:"total"`
}

// CategoryRow distribución de ítems por categoría (dashboard).
type CategoryRow struct {
	Category string          `json:"category"`
	Items    int             `json:"items"`
	Value    decimal.Decimal `json:"value"`
}

// DashboardSummary resumen del panel.
type DashboardSummary struct {
	TotalItems     int             `json:"total_items"`
	TotalValue     decimal.Decimal `json:"total_value"`
	ItemsBelowMin  int             `json:"items_below_min"`
	Categories     []CategoryRow   `json:"categories"`
}
