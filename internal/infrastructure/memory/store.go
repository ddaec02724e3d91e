package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
)

// Store guarda todo el estado en memoria bajo un único mutex. Sirve para
// desarrollo sin base de datos y para los tests de casos de uso; implementa
// los mismos puertos que los adaptadores de PostgreSQL, con la misma
// semántica (decremento condicional atómico incluido).
type Store struct {
	mu        sync.Mutex
	items     map[string]*entity.StockItem
	suppliers map[string]*entity.Supplier
	users     map[string]*entity.User
	history   []historyRow
	logs      []*entity.AuditLog
	seq       int64
}

// historyRow conserva el orden de inserción para desempatar fechas iguales.
type historyRow struct {
	seq int64
	rec entity.ItemHistory
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]*entity.StockItem),
		suppliers: make(map[string]*entity.Supplier),
		users:     make(map[string]*entity.User),
	}
}

// withLock ejecuta fn bajo el mutex, salvo que el caller ya lo tenga (tx).
func (s *Store) withLock(noLock bool, fn func() error) error {
	if !noLock {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

// snapshotState copia el estado mutable para poder restaurarlo en rollback.
func (s *Store) snapshotState() *memState {
	st := &memState{
		items:     make(map[string]*entity.StockItem, len(s.items)),
		suppliers: make(map[string]*entity.Supplier, len(s.suppliers)),
		users:     make(map[string]*entity.User, len(s.users)),
		history:   append([]historyRow(nil), s.history...),
		logs:      append([]*entity.AuditLog(nil), s.logs...),
		seq:       s.seq,
	}
	for id, i := range s.items {
		cp := *i
		st.items[id] = &cp
	}
	for id, sp := range s.suppliers {
		cp := *sp
		st.suppliers[id] = &cp
	}
	for id, u := range s.users {
		cp := *u
		st.users[id] = &cp
	}
	return st
}

func (s *Store) restoreState(st *memState) {
	s.items = st.items
	s.suppliers = st.suppliers
	s.users = st.users
	s.history = st.history
	s.logs = st.logs
	s.seq = st.seq
}

type memState struct {
	items     map[string]*entity.StockItem
	suppliers map[string]*entity.Supplier
	users     map[string]*entity.User
	history   []historyRow
	logs      []*entity.AuditLog
	seq       int64
}

// ── Núcleo sin lock (los adaptadores y la tx deciden quién bloquea) ──────────

func (s *Store) createItem(item *entity.StockItem) error {
	for _, existing := range s.items {
		if strings.EqualFold(existing.Code, item.Code) {
			return domain.ErrDuplicateCode
		}
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *Store) getItem(id string) *entity.StockItem {
	i, ok := s.items[id]
	if !ok {
		return nil
	}
	cp := *i
	return &cp
}

func (s *Store) getItemByCode(code string) *entity.StockItem {
	for _, i := range s.items {
		if strings.EqualFold(i.Code, code) {
			cp := *i
			return &cp
		}
	}
	return nil
}

func (s *Store) updateItem(item *entity.StockItem) error {
	stored, ok := s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.items {
		if id != item.ID && strings.EqualFold(existing.Code, item.Code) {
			return domain.ErrDuplicateCode
		}
	}
	cp := *item
	cp.SystemStock = stored.SystemStock // el update nunca toca el stock
	s.items[item.ID] = &cp
	return nil
}

func (s *Store) deleteItem(id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) listItems(search string, onlyBelowMin bool, limit, offset int) []*entity.StockItem {
	var out []*entity.StockItem
	for _, i := range s.items {
		if search != "" &&
			!strings.Contains(strings.ToLower(i.Code), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(i.Description), strings.ToLower(search)) {
			continue
		}
		if onlyBelowMin && !i.BelowMinimum() {
			continue
		}
		cp := *i
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (s *Store) appendHistory(record entity.ItemHistory) error {
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
	s.seq++
	s.history = append(s.history, historyRow{seq: s.seq, rec: record})
	return nil
}

func (s *Store) historyDescending(filter func(entity.ItemHistory) bool) []entity.ItemHistory {
	rows := make([]historyRow, 0, len(s.history))
	for _, r := range s.history {
		if filter == nil || filter(r.rec) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(a, b int) bool {
		da, db := rows[a].rec.Record().Date, rows[b].rec.Record().Date
		if !da.Equal(db) {
			return da.After(db)
		}
		return rows[a].seq > rows[b].seq
	})
	out := make([]entity.ItemHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.rec)
	}
	return out
}
