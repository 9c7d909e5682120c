package stock_test

import (
	"context"
	"errors"
	"sync"
	"time"

	appstock "github.com/jhoicas/stock-core-api/internal/application/stock"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba en memoria: un memStore compartido simula la base, y el
// memTxRunner simula la transacción (mutex global + copia de respaldo para
// poder hacer rollback si el callback falla).
// ──────────────────────────────────────────────────────────────────────────────

var errForcedFailure = errors.New("fallo inyectado")

type memStore struct {
	mu          sync.Mutex
	skus        map[string]*entity.SKU
	snapshots   map[string]*entity.StockSnapshot
	movements   []*entity.MovementEntry
	costHistory []*entity.CostHistoryEntry

	failMovementCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		skus:      map[string]*entity.SKU{},
		snapshots: map[string]*entity.StockSnapshot{},
	}
}

func (s *memStore) addSKU(id string) {
	s.skus[id] = &entity.SKU{ID: id, Code: "C-" + id, Name: "SKU " + id, Active: true, CreatedAt: time.Now()}
}

// seed registra el SKU y deja su snapshot en el estado indicado.
func (s *memStore) seed(skuID string, qty, reserved, avgCost int64) {
	s.addSKU(skuID)
	s.snapshots[skuID] = &entity.StockSnapshot{
		SKUID:       skuID,
		Quantity:    qty,
		Reserved:    reserved,
		AverageCost: avgCost,
		UpdatedAt:   time.Now(),
	}
}

func (s *memStore) cloneState() (map[string]*entity.StockSnapshot, []*entity.MovementEntry, []*entity.CostHistoryEntry) {
	snaps := make(map[string]*entity.StockSnapshot, len(s.snapshots))
	for k, v := range s.snapshots {
		c := *v
		snaps[k] = &c
	}
	movs := append([]*entity.MovementEntry(nil), s.movements...)
	hist := append([]*entity.CostHistoryEntry(nil), s.costHistory...)
	return snaps, movs, hist
}

// memTxRunner serializa con un mutex global y revierte el estado si fn falla.
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	snapshots repository.StockSnapshotRepository,
	movements repository.StockMovementRepository,
	costHistory repository.CostHistoryRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snaps, movs, hist := r.store.cloneState()
	err := fn(&memSnapshotRepo{store: r.store}, &memMovementRepo{store: r.store}, &memCostHistoryRepo{store: r.store})
	if err != nil {
		r.store.snapshots, r.store.movements, r.store.costHistory = snaps, movs, hist
	}
	return err
}

type memSnapshotRepo struct{ store *memStore }

func (r *memSnapshotRepo) Get(_ context.Context, skuID string) (*entity.StockSnapshot, error) {
	if snap, ok := r.store.snapshots[skuID]; ok {
		c := *snap
		return &c, nil
	}
	return &entity.StockSnapshot{SKUID: skuID}, nil
}

func (r *memSnapshotRepo) GetForUpdate(ctx context.Context, skuID string) (*entity.StockSnapshot, error) {
	return r.Get(ctx, skuID)
}

func (r *memSnapshotRepo) Save(_ context.Context, snapshot *entity.StockSnapshot) error {
	c := *snapshot
	r.store.snapshots[snapshot.SKUID] = &c
	return nil
}

func (r *memSnapshotRepo) GetMany(_ context.Context, skuIDs []string) ([]*entity.StockSnapshot, error) {
	var out []*entity.StockSnapshot
	for _, id := range skuIDs {
		if snap, ok := r.store.snapshots[id]; ok {
			c := *snap
			out = append(out, &c)
		}
	}
	return out, nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(_ context.Context, movement *entity.MovementEntry) error {
	if r.store.failMovementCreate {
		return errForcedFailure
	}
	c := *movement
	r.store.movements = append(r.store.movements, &c)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.MovementEntry, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) matches(m *entity.MovementEntry, skuID string, from, to *time.Time) bool {
	if m.SKUID != skuID {
		return false
	}
	if from != nil && m.OccurredAt.Before(*from) {
		return false
	}
	if to != nil && m.OccurredAt.After(*to) {
		return false
	}
	return true
}

// ListBySKU devuelve en orden de inserción inverso (la inserción es cronológica).
func (r *memMovementRepo) ListBySKU(_ context.Context, skuID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	var filtered []*entity.MovementEntry
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.matches(r.store.movements[i], skuID, from, to) {
			filtered = append(filtered, r.store.movements[i])
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *memMovementRepo) CountBySKU(_ context.Context, skuID string, from, to *time.Time) (int, error) {
	n := 0
	for _, m := range r.store.movements {
		if r.matches(m, skuID, from, to) {
			n++
		}
	}
	return n, nil
}

type memCostHistoryRepo struct{ store *memStore }

func (r *memCostHistoryRepo) Create(_ context.Context, entry *entity.CostHistoryEntry) error {
	c := *entry
	r.store.costHistory = append(r.store.costHistory, &c)
	return nil
}

func (r *memCostHistoryRepo) ListBySKU(_ context.Context, skuID string, limit, offset int) ([]*entity.CostHistoryEntry, error) {
	var out []*entity.CostHistoryEntry
	for i := len(r.store.costHistory) - 1; i >= 0; i-- {
		if r.store.costHistory[i].SKUID == skuID {
			out = append(out, r.store.costHistory[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memSKURepo struct{ store *memStore }

func (r *memSKURepo) Create(_ context.Context, sku *entity.SKU) error {
	c := *sku
	r.store.skus[sku.ID] = &c
	return nil
}

func (r *memSKURepo) GetByID(_ context.Context, id string) (*entity.SKU, error) {
	if sku, ok := r.store.skus[id]; ok {
		c := *sku
		return &c, nil
	}
	return nil, nil
}

func (r *memSKURepo) GetByCode(_ context.Context, code string) (*entity.SKU, error) {
	for _, sku := range r.store.skus {
		if sku.Code == code {
			c := *sku
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memSKURepo) List(_ context.Context, limit, offset int) ([]*entity.SKU, error) {
	var out []*entity.SKU
	for _, sku := range r.store.skus {
		c := *sku
		out = append(out, &c)
	}
	return out, nil
}

// spyCache registra accesos para poder afirmar que la ruta de mutación solo
// invalida y jamás lee del caché.
type spyCache struct {
	mu      sync.Mutex
	data    map[string]appstock.Availability
	gets    int
	sets    int
	removes []string
}

func newSpyCache() *spyCache {
	return &spyCache{data: map[string]appstock.Availability{}}
}

func (c *spyCache) Get(skuID string) (appstock.Availability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	av, ok := c.data[skuID]
	return av, ok
}

func (c *spyCache) Set(skuID string, av appstock.Availability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[skuID] = av
}

func (c *spyCache) Remove(skuID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removes = append(c.removes, skuID)
	delete(c.data, skuID)
}

// spyNotifier registra las notificaciones emitidas; puede forzar un error.
type spyNotifier struct {
	mu     sync.Mutex
	events [][2]string // sku_id, movement_id
	err    error
}

func (n *spyNotifier) StockChanged(_ context.Context, skuID, movementID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, [2]string{skuID, movementID})
	return n.err
}
