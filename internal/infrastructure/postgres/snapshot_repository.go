package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL. Usa el
// pool directamente porque ReplaceAll necesita abrir su propia transacción.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository construye el adaptador de backup/restore.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// ExportAll lee todo el estado en un solo snapshot.
func (r *SnapshotRepo) ExportAll() (*entity.Snapshot, error) {
	const all = 1 << 30

	items, err := NewStockItemRepository(r.pool).List("", false, all, 0)
	if err != nil {
		return nil, err
	}
	suppliers, err := NewSupplierRepository(r.pool).List(all, 0)
	if err != nil {
		return nil, err
	}
	users, err := NewUserRepository(r.pool).List(all, 0)
	if err != nil {
		return nil, err
	}
	history, err := NewItemHistoryRepository(r.pool).ExportAll()
	if err != nil {
		return nil, err
	}
	logs, err := NewAuditLogRepository(r.pool).ExportAll()
	if err != nil {
		return nil, err
	}
	return &entity.Snapshot{
		Items:     items,
		Suppliers: suppliers,
		Users:     users,
		History:   history,
		AuditLogs: logs,
	}, nil
}

// ReplaceAll sustituye todo el estado por el snapshot en una sola transacción.
func (r *SnapshotRepo) ReplaceAll(snap *entity.Snapshot) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `TRUNCATE item_history, audit_logs, stock_items, users, suppliers`)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	supplierRepo := NewSupplierRepository(tx)
	for _, s := range snap.Suppliers {
		if err := supplierRepo.Create(s); err != nil {
			return err
		}
	}
	itemRepo := NewStockItemRepository(tx)
	for _, i := range snap.Items {
		if err := itemRepo.Create(i); err != nil {
			return err
		}
	}
	userRepo := NewUserRepository(tx)
	for _, u := range snap.Users {
		if err := userRepo.Create(u); err != nil {
			return err
		}
	}
	historyRepo := NewItemHistoryRepository(tx)
	for _, h := range snap.History {
		if err := historyRepo.Append(h); err != nil {
			return err
		}
	}
	auditRepo := NewAuditLogRepository(tx)
	for _, l := range snap.AuditLogs {
		if err := auditRepo.Append(l); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
