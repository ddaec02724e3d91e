package movement

import (
	"context"

	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando
// repositorios atados a esa tx. Garantiza que la mutación del stock y el
// append del historial se confirman o revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		historyRepo repository.ItemHistoryRepository,
	) error) error
}

// Auditor registra acciones en el trail de auditoría (best-effort: nunca
// devuelve error al caller).
type Auditor interface {
	Record(actingUser, action string)
}
