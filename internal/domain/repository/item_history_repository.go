package repository

import (
	"time"

	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
)

// ItemHistoryRepository define el puerto append-only del historial por ítem.
// No expone update ni delete: los registros son inmutables.
type ItemHistoryRepository interface {
	// Append persiste un registro; asigna ID y fecha si vienen vacíos.
	// Rechaza item_id vacío o cantidad no positiva.
	Append(record entity.ItemHistory) error
	// ListByItem devuelve el historial completo del ítem, del más reciente
	// al más antiguo. Re-consultar siempre devuelve el conjunto vigente.
	ListByItem(itemID string) ([]entity.ItemHistory, error)
	// ListByPeriod devuelve los registros en [from, to] (nil = sin cota).
	ListByPeriod(from, to *time.Time) ([]entity.ItemHistory, error)
	// ExportAll devuelve todo el historial (backup).
	ExportAll() ([]entity.ItemHistory, error)
}
