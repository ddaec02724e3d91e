package repository

import "github.com/alumasa/almoxarifado-api/internal/domain/entity"

// StockItemRepository define el puerto de persistencia para StockItem (DIP),
// incluidas las primitivas del libro de stock. Las primitivas mutan solo la
// cantidad; el historial y la auditoría los ordena el caller.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetByCode busca por código sin distinguir mayúsculas.
	GetByCode(code string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	// Delete elimina el ítem; su historial se conserva (claveado por item_id).
	Delete(id string) error
	// List filtra por texto libre (código/descripción) y opcionalmente solo
	// ítems en o bajo el mínimo.
	List(search string, onlyBelowMin bool, limit, offset int) ([]*entity.StockItem, error)

	// Primitivas del libro de stock.
	// Increment suma qty (> 0) y devuelve el stock resultante.
	Increment(id string, qty int64) (int64, error)
	// DecrementIfAvailable resta qty (> 0) solo si el resultado queda >= 0;
	// la verificación y la resta son una sola operación atómica.
	// Devuelve ErrInsufficientStock sin cambio de estado si no alcanza.
	DecrementIfAvailable(id string, qty int64) (int64, error)
	// SetAbsolute sobrescribe la cantidad (conteo físico confirmado manda).
	// Uso exclusivo de la conciliación de inventario.
	SetAbsolute(id string, qty int64) error
	// GetForUpdate bloquea la fila del ítem dentro de una transacción.
	GetForUpdate(id string) (*entity.StockItem, error)
}
