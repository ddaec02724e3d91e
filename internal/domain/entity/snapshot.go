package entity

// Snapshot es el conjunto completo de datos para backup/restore. La
// restauración reemplaza todo el estado de forma atómica; un snapshot
// incompleto se rechaza sin tocar los datos actuales.
type Snapshot struct {
	Items     []*StockItem
	Suppliers []*Supplier
	Users     []*User
	History   []ItemHistory
	AuditLogs []*AuditLog
}
