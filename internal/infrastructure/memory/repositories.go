package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// Los puertos declaran métodos con nombres que chocan entre sí (Create, List),
// así que cada uno se expone con un adaptador propio sobre el mismo Store.

var (
	_ repository.StockItemRepository   = (*ItemStore)(nil)
	_ repository.ItemHistoryRepository = (*HistoryStore)(nil)
	_ repository.AuditLogRepository    = (*AuditStore)(nil)
	_ repository.SupplierRepository    = (*SupplierStore)(nil)
	_ repository.UserRepository        = (*UserStore)(nil)
	_ repository.SnapshotRepository    = (*SnapshotStore)(nil)
)

// ItemStore adaptador de StockItemRepository.
type ItemStore struct {
	s      *Store
	noLock bool
}

// NewItemStore construye el adaptador de ítems.
func NewItemStore(s *Store) *ItemStore { return &ItemStore{s: s} }

func (a *ItemStore) Create(item *entity.StockItem) error {
	return a.s.withLock(a.noLock, func() error { return a.s.createItem(item) })
}

func (a *ItemStore) GetByID(id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	_ = a.s.withLock(a.noLock, func() error { out = a.s.getItem(id); return nil })
	return out, nil
}

func (a *ItemStore) GetByCode(code string) (*entity.StockItem, error) {
	var out *entity.StockItem
	_ = a.s.withLock(a.noLock, func() error { out = a.s.getItemByCode(code); return nil })
	return out, nil
}

func (a *ItemStore) Update(item *entity.StockItem) error {
	return a.s.withLock(a.noLock, func() error { return a.s.updateItem(item) })
}

func (a *ItemStore) Delete(id string) error {
	return a.s.withLock(a.noLock, func() error { return a.s.deleteItem(id) })
}

func (a *ItemStore) List(search string, onlyBelowMin bool, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	_ = a.s.withLock(a.noLock, func() error {
		out = a.s.listItems(search, onlyBelowMin, limit, offset)
		return nil
	})
	return out, nil
}

func (a *ItemStore) Increment(id string, qty int64) (int64, error) {
	var newStock int64
	err := a.s.withLock(a.noLock, func() error {
		i, ok := a.s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		i.SystemStock += qty
		i.UpdatedAt = time.Now()
		newStock = i.SystemStock
		return nil
	})
	return newStock, err
}

// DecrementIfAvailable verifica y resta bajo el mismo lock: dos salidas
// concurrentes nunca dejan el stock negativo.
func (a *ItemStore) DecrementIfAvailable(id string, qty int64) (int64, error) {
	var newStock int64
	err := a.s.withLock(a.noLock, func() error {
		i, ok := a.s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if i.SystemStock < qty {
			return domain.ErrInsufficientStock
		}
		i.SystemStock -= qty
		i.UpdatedAt = time.Now()
		newStock = i.SystemStock
		return nil
	})
	return newStock, err
}

func (a *ItemStore) SetAbsolute(id string, qty int64) error {
	return a.s.withLock(a.noLock, func() error {
		i, ok := a.s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		i.SystemStock = qty
		i.UpdatedAt = time.Now()
		return nil
	})
}

func (a *ItemStore) GetForUpdate(id string) (*entity.StockItem, error) {
	return a.GetByID(id)
}

// HistoryStore adaptador de ItemHistoryRepository.
type HistoryStore struct {
	s      *Store
	noLock bool
}

// NewHistoryStore construye el adaptador de historial.
func NewHistoryStore(s *Store) *HistoryStore { return &HistoryStore{s: s} }

func (a *HistoryStore) Append(record entity.ItemHistory) error {
	return a.s.withLock(a.noLock, func() error { return a.s.appendHistory(record) })
}

func (a *HistoryStore) ListByItem(itemID string) ([]entity.ItemHistory, error) {
	var out []entity.ItemHistory
	_ = a.s.withLock(a.noLock, func() error {
		out = a.s.historyDescending(func(h entity.ItemHistory) bool {
			return h.Record().ItemID == itemID
		})
		return nil
	})
	return out, nil
}

func (a *HistoryStore) ListByPeriod(from, to *time.Time) ([]entity.ItemHistory, error) {
	var out []entity.ItemHistory
	_ = a.s.withLock(a.noLock, func() error {
		out = a.s.historyDescending(func(h entity.ItemHistory) bool {
			d := h.Record().Date
			if from != nil && d.Before(*from) {
				return false
			}
			if to != nil && d.After(*to) {
				return false
			}
			return true
		})
		return nil
	})
	return out, nil
}

func (a *HistoryStore) ExportAll() ([]entity.ItemHistory, error) {
	var out []entity.ItemHistory
	_ = a.s.withLock(a.noLock, func() error {
		for _, r := range a.s.history {
			out = append(out, r.rec)
		}
		return nil
	})
	return out, nil
}

// AuditStore adaptador de AuditLogRepository.
type AuditStore struct {
	s      *Store
	noLock bool
}

// NewAuditStore construye el adaptador de auditoría.
func NewAuditStore(s *Store) *AuditStore { return &AuditStore{s: s} }

func (a *AuditStore) Append(log *entity.AuditLog) error {
	return a.s.withLock(a.noLock, func() error {
		cp := *log
		a.s.logs = append(a.s.logs, &cp)
		return nil
	})
}

func (a *AuditStore) ListRecent(limit, offset int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	_ = a.s.withLock(a.noLock, func() error {
		logs := append([]*entity.AuditLog(nil), a.s.logs...)
		sort.SliceStable(logs, func(x, y int) bool {
			return logs[x].Timestamp.After(logs[y].Timestamp)
		})
		if offset >= len(logs) {
			return nil
		}
		logs = logs[offset:]
		if limit < len(logs) {
			logs = logs[:limit]
		}
		out = logs
		return nil
	})
	return out, nil
}

func (a *AuditStore) ExportAll() ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	_ = a.s.withLock(a.noLock, func() error {
		out = append(out, a.s.logs...)
		return nil
	})
	return out, nil
}

// SupplierStore adaptador de SupplierRepository.
type SupplierStore struct {
	s      *Store
	noLock bool
}

// NewSupplierStore construye el adaptador de proveedores.
func NewSupplierStore(s *Store) *SupplierStore { return &SupplierStore{s: s} }

func (a *SupplierStore) Create(sp *entity.Supplier) error {
	return a.s.withLock(a.noLock, func() error {
		cp := *sp
		a.s.suppliers[sp.ID] = &cp
		return nil
	})
}

func (a *SupplierStore) GetByID(id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	_ = a.s.withLock(a.noLock, func() error {
		if sp, ok := a.s.suppliers[id]; ok {
			cp := *sp
			out = &cp
		}
		return nil
	})
	return out, nil
}

func (a *SupplierStore) Update(sp *entity.Supplier) error {
	return a.s.withLock(a.noLock, func() error {
		if _, ok := a.s.suppliers[sp.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *sp
		a.s.suppliers[sp.ID] = &cp
		return nil
	})
}

func (a *SupplierStore) Delete(id string) error {
	return a.s.withLock(a.noLock, func() error {
		if _, ok := a.s.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(a.s.suppliers, id)
		return nil
	})
}

func (a *SupplierStore) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	_ = a.s.withLock(a.noLock, func() error {
		for _, sp := range a.s.suppliers {
			cp := *sp
			out = append(out, &cp)
		}
		sort.Slice(out, func(x, y int) bool { return out[x].Name < out[y].Name })
		if offset >= len(out) {
			out = nil
			return nil
		}
		out = out[offset:]
		if limit < len(out) {
			out = out[:limit]
		}
		return nil
	})
	return out, nil
}

// UserStore adaptador de UserRepository.
type UserStore struct {
	s      *Store
	noLock bool
}

// NewUserStore construye el adaptador de usuarios.
func NewUserStore(s *Store) *UserStore { return &UserStore{s: s} }

func (a *UserStore) Create(u *entity.User) error {
	return a.s.withLock(a.noLock, func() error {
		for _, existing := range a.s.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *u
		a.s.users[u.ID] = &cp
		return nil
	})
}

func (a *UserStore) GetByID(id string) (*entity.User, error) {
	var out *entity.User
	_ = a.s.withLock(a.noLock, func() error {
		if u, ok := a.s.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, nil
}

func (a *UserStore) GetByEmail(email string) (*entity.User, error) {
	var out *entity.User
	_ = a.s.withLock(a.noLock, func() error {
		for _, u := range a.s.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, nil
}

func (a *UserStore) Update(u *entity.User) error {
	return a.s.withLock(a.noLock, func() error {
		if _, ok := a.s.users[u.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, existing := range a.s.users {
			if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *u
		a.s.users[u.ID] = &cp
		return nil
	})
}

func (a *UserStore) Delete(id string) error {
	return a.s.withLock(a.noLock, func() error {
		if _, ok := a.s.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(a.s.users, id)
		return nil
	})
}

func (a *UserStore) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	_ = a.s.withLock(a.noLock, func() error {
		for _, u := range a.s.users {
			cp := *u
			out = append(out, &cp)
		}
		sort.Slice(out, func(x, y int) bool { return out[x].Name < out[y].Name })
		if offset >= len(out) {
			out = nil
			return nil
		}
		out = out[offset:]
		if limit < len(out) {
			out = out[:limit]
		}
		return nil
	})
	return out, nil
}

// SnapshotStore adaptador de SnapshotRepository.
type SnapshotStore struct {
	s *Store
}

// NewSnapshotStore construye el adaptador de backup/restore.
func NewSnapshotStore(s *Store) *SnapshotStore { return &SnapshotStore{s: s} }

func (a *SnapshotStore) ExportAll() (*entity.Snapshot, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	snap := &entity.Snapshot{}
	for _, i := range a.s.items {
		cp := *i
		snap.Items = append(snap.Items, &cp)
	}
	sort.Slice(snap.Items, func(x, y int) bool { return snap.Items[x].Code < snap.Items[y].Code })
	for _, sp := range a.s.suppliers {
		cp := *sp
		snap.Suppliers = append(snap.Suppliers, &cp)
	}
	sort.Slice(snap.Suppliers, func(x, y int) bool { return snap.Suppliers[x].Name < snap.Suppliers[y].Name })
	for _, u := range a.s.users {
		cp := *u
		snap.Users = append(snap.Users, &cp)
	}
	sort.Slice(snap.Users, func(x, y int) bool { return snap.Users[x].Name < snap.Users[y].Name })
	for _, r := range a.s.history {
		snap.History = append(snap.History, r.rec)
	}
	for _, l := range a.s.logs {
		cp := *l
		snap.AuditLogs = append(snap.AuditLogs, &cp)
	}
	return snap, nil
}

func (a *SnapshotStore) ReplaceAll(snap *entity.Snapshot) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	fresh := NewStore()
	for _, sp := range snap.Suppliers {
		cp := *sp
		fresh.suppliers[sp.ID] = &cp
	}
	for _, i := range snap.Items {
		if err := fresh.createItem(i); err != nil {
			return err
		}
	}
	for _, u := range snap.Users {
		cp := *u
		fresh.users[u.ID] = &cp
	}
	for _, h := range snap.History {
		if err := fresh.appendHistory(h); err != nil {
			return err
		}
	}
	for _, l := range snap.AuditLogs {
		cp := *l
		fresh.logs = append(fresh.logs, &cp)
	}
	a.s.restoreState(&memState{
		items:     fresh.items,
		suppliers: fresh.suppliers,
		users:     fresh.users,
		history:   fresh.history,
		logs:      fresh.logs,
		seq:       fresh.seq,
	})
	return nil
}
