package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

var _ repository.ItemHistoryRepository = (*ItemHistoryRepo)(nil)

// ItemHistoryRepo implementación de ItemHistoryRepository sobre PostgreSQL.
// Una sola tabla con columna type y columnas de variante nullables; solo
// INSERT y SELECT, los registros son inmutables.
type ItemHistoryRepo struct {
	q Querier
}

// NewItemHistoryRepository construye el adaptador de historial. Pasar pool o tx (Querier).
func NewItemHistoryRepository(q Querier) *ItemHistoryRepo {
	return &ItemHistoryRepo{q: q}
}

const historyColumns = `id, item_id, type, date, quantity, user_name,
	details, requester, responsible, previous_stock, counted_stock`

// Append persiste un registro; asigna ID y fecha si vienen vacíos.
func (r *ItemHistoryRepo) Append(record entity.ItemHistory) error {
	rec := record.Record()
	if rec.ItemID == "" || rec.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	var details, requester, responsible *string
	var previousStock, countedStock *int64
	switch h := record.(type) {
	case *entity.EntryHistory:
		details = &h.Details
	case *entity.ExitHistory:
		requester = &h.Requester
		responsible = &h.Responsible
	case *entity.AdjustmentHistory:
		previousStock = &h.PreviousStock
		countedStock = &h.CountedStock
	default:
		return domain.ErrInvalidInput
	}

	query := `
		INSERT INTO item_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ItemID, record.Type(), rec.Date, rec.Quantity, rec.User,
		details, requester, responsible, previousStock, countedStock,
	)
	if err != nil {
		return fmt.Errorf("insert item_history: %w", err)
	}
	return nil
}

func scanHistory(rows pgx.Rows) (entity.ItemHistory, error) {
	var rec entity.HistoryRecord
	var typ string
	var details, requester, responsible *string
	var previousStock, countedStock *int64
	err := rows.Scan(
		&rec.ID, &rec.ItemID, &typ, &rec.Date, &rec.Quantity, &rec.User,
		&details, &requester, &responsible, &previousStock, &countedStock,
	)
	if err != nil {
		return nil, err
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	switch typ {
	case entity.HistoryTypeEntry:
		return &entity.EntryHistory{HistoryRecord: rec, Details: deref(details)}, nil
	case entity.HistoryTypeExit:
		return &entity.ExitHistory{HistoryRecord: rec, Requester: deref(requester), Responsible: deref(responsible)}, nil
	case entity.HistoryTypeAdjustment:
		h := &entity.AdjustmentHistory{HistoryRecord: rec}
		if previousStock != nil {
			h.PreviousStock = *previousStock
		}
		if countedStock != nil {
			h.CountedStock = *countedStock
		}
		return h, nil
	default:
		return nil, fmt.Errorf("tipo de historial desconocido: %q", typ)
	}
}

func (r *ItemHistoryRepo) queryHistory(query string, args ...any) ([]entity.ItemHistory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query item_history: %w", err)
	}
	defer rows.Close()

	var out []entity.ItemHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item_history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListByItem devuelve el historial del ítem, del más reciente al más antiguo.
func (r *ItemHistoryRepo) ListByItem(itemID string) ([]entity.ItemHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history WHERE item_id = $1 ORDER BY date DESC, id DESC`
	return r.queryHistory(query, itemID)
}

// ListByPeriod devuelve los registros en [from, to]; cualquier cota puede ser nil.
func (r *ItemHistoryRepo) ListByPeriod(from, to *time.Time) ([]entity.ItemHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"
	return r.queryHistory(query, args...)
}

// ExportAll devuelve todo el historial (backup).
func (r *ItemHistoryRepo) ExportAll() ([]entity.ItemHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history ORDER BY date ASC, id ASC`
	return r.queryHistory(query)
}
