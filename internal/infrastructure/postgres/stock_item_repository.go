package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, code, description, category, equipment, location, unit,
	system_stock, initial_stock, min_stock, value, supplier_id, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var i entity.StockItem
	err := row.Scan(
		&i.ID, &i.Code, &i.Description, &i.Category, &i.Equipment, &i.Location, &i.Unit,
		&i.SystemStock, &i.InitialStock, &i.MinStock, &i.Value, &i.SupplierID,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta un ítem nuevo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Description, item.Category, item.Equipment,
		item.Location, item.Unit, item.SystemStock, item.InitialStock, item.MinStock,
		item.Value, item.SupplierID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert stock_item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_item: %w", err)
	}
	return item, nil
}

// GetByCode busca por código sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetByCode(code string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE lower(code) = lower($1)`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_item by code: %w", err)
	}
	return item, nil
}

// Update actualiza los datos descriptivos del ítem (no toca system_stock).
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET
			code = $2, description = $3, category = $4, equipment = $5, location = $6,
			unit = $7, initial_stock = $8, min_stock = $9, value = $10, supplier_id = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Description, item.Category, item.Equipment,
		item.Location, item.Unit, item.InitialStock, item.MinStock, item.Value,
		item.SupplierID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update stock_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem. El historial se conserva (claveado por item_id, sin FK CASCADE).
func (r *StockItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por texto libre en código/descripción y opcionalmente solo ítems en o bajo el mínimo.
func (r *StockItemRepo) List(search string, onlyBelowMin bool, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE 1=1`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (code ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if onlyBelowMin {
		query += " AND system_stock <= min_stock"
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock_items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock_item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Increment suma qty al stock y devuelve la cantidad resultante.
func (r *StockItemRepo) Increment(id string, qty int64) (int64, error) {
	query := `
		UPDATE stock_items
		SET system_stock = system_stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING system_stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, qty).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return newStock, nil
}

// DecrementIfAvailable resta qty solo si el resultado queda >= 0. La condición
// y la resta son un solo UPDATE: dos salidas concurrentes nunca dejan el
// stock negativo, una de las dos recibe ErrInsufficientStock.
func (r *StockItemRepo) DecrementIfAvailable(id string, qty int64) (int64, error) {
	query := `
		UPDATE stock_items
		SET system_stock = system_stock - $2, updated_at = now()
		WHERE id = $1 AND system_stock >= $2
		RETURNING system_stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, qty).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// La fila no existe o no alcanza el stock: distinguir.
			item, gerr := r.GetByID(id)
			if gerr != nil {
				return 0, gerr
			}
			if item == nil {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, nil
}

// SetAbsolute sobrescribe la cantidad. Uso exclusivo de la conciliación.
func (r *StockItemRepo) SetAbsolute(id string, qty int64) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE stock_items SET system_stock = $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE). Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_item for update: %w", err)
	}
	return item, nil
}
