package memory

import (
	"context"

	"github.com/alumasa/almoxarifado-api/internal/application/movement"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

var _ movement.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción sobre el Store: toma el mutex por toda la
// duración del callback y, si fn falla, restaura el estado previo completo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con adaptadores que no vuelven a tomar el lock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	historyRepo repository.ItemHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := r.s.snapshotState()
	itemRepo := &ItemStore{s: r.s, noLock: true}
	historyRepo := &HistoryStore{s: r.s, noLock: true}

	if err := fn(itemRepo, historyRepo); err != nil {
		r.s.restoreState(before)
		return err
	}
	return nil
}
