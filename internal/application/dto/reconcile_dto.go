package dto

import "github.com/shopspring/decimal"

// CountedItem conteo físico de un ítem.
type CountedItem struct {
	ItemID  string `json:"item_id"`
	Counted int64  `json:"counted"`
}

// DivergenceRow divergencia de un ítem contado: Divergence = Counted -
// SystemStock; Impact = Divergence * valor unitario.
type DivergenceRow struct {
	ItemID      string          `json:"item_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	SystemStock int64           `json:"system_stock"`
	Counted     int64           `json:"counted"`
	Divergence  int64           `json:"divergence"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Impact      decimal.Decimal `json:"impact"`
}

// DivergenceReport divergencias no nulas y su impacto monetario total.
// Ítems sin conteo o con conteo igual al stock del sistema quedan fuera.
type DivergenceReport struct {
	Rows        []DivergenceRow `json:"rows"`
	TotalImpact decimal.Decimal `json:"total_impact"`
}

// AdjustmentBatch lote de ajustes a aplicar (conteo físico confirmado).
type AdjustmentBatch struct {
	Counts []CountedItem `json:"counts"`
}

// AdjustmentOutcome resultado por ítem de un lote de ajustes.
type AdjustmentOutcome struct {
	ItemID    string `json:"item_id"`
	Code      string `json:"code,omitempty"`
	FromStock int64  `json:"from_stock"`
	ToStock   int64  `json:"to_stock"`
	Error     string `json:"error,omitempty"`
}

// AdjustmentReport resultado completo del lote: qué ajustes se aplicaron y
// cuáles fallaron, nunca solo el primer error.
type AdjustmentReport struct {
	Applied []AdjustmentOutcome `json:"applied"`
	Failed  []AdjustmentOutcome `json:"failed"`
}
