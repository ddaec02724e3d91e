package entity

import "time"

// Tipos de registro de historial.
const (
	HistoryTypeEntry      = "ENTRY"      // entrada de material
	HistoryTypeExit       = "EXIT"       // salida de material
	HistoryTypeAdjustment = "ADJUSTMENT" // ajuste de inventario (conciliación)
)

// HistoryRecord es el sobre común de todo registro de historial de un ítem.
// Quantity es la magnitud (siempre positiva); el signo lo implica la variante.
type HistoryRecord struct {
	ID       string
	ItemID   string
	Date     time.Time
	Quantity int64
	User     string
}

// Record devuelve el sobre común; promovido a todas las variantes por embedding.
func (r *HistoryRecord) Record() *HistoryRecord { return r }

// ItemHistory es la unión etiquetada Entry/Exit/Adjustment. Cada variante
// lleva su payload propio, de modo que "las salidas siempre tienen
// solicitante y responsable" es verificable en compilación.
type ItemHistory interface {
	Record() *HistoryRecord
	Type() string
}

// EntryHistory registra una entrada: proveedor, factura y observaciones
// compuestos en Details ("Fornecedor: X. NF: Y. Obs: Z.").
type EntryHistory struct {
	HistoryRecord
	Details string
}

func (*EntryHistory) Type() string { return HistoryTypeEntry }

// ExitHistory registra una salida.
type ExitHistory struct {
	HistoryRecord
	Requester   string // sector o persona que solicita
	Responsible string // quien autoriza/entrega
}

func (*ExitHistory) Type() string { return HistoryTypeExit }

// AdjustmentHistory registra un ajuste de conciliación. Va etiquetado
// distinto de Entry/Exit para que los reportes no lo confundan con un
// movimiento real; Quantity es |CountedStock - PreviousStock|.
type AdjustmentHistory struct {
	HistoryRecord
	PreviousStock int64
	CountedStock  int64
}

func (*AdjustmentHistory) Type() string { return HistoryTypeAdjustment }

// Verificación estática de las variantes.
var (
	_ ItemHistory = (*EntryHistory)(nil)
	_ ItemHistory = (*ExitHistory)(nil)
	_ ItemHistory = (*AdjustmentHistory)(nil)
)
