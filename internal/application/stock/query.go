package stock

import (
	"context"
	"time"

	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

// Límites de paginación para el historial de movimientos.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryUseCase es el lado de lectura: disponibilidad puntual (con caché TTL),
// consultas por lote e historial de movimientos. Nunca toma bloqueos; una
// decisión de mutación jamás debe basarse en estas lecturas, la ruta de
// escritura revalida bajo el bloqueo de fila.
type QueryUseCase struct {
	skuRepo   repository.SKURepository
	snapshots repository.StockSnapshotRepository
	movements repository.StockMovementRepository
	cache     AvailabilityCache
}

// NewQueryUseCase construye el caso de uso de lectura. Los repositorios van
// atados al pool (sin transacción).
func NewQueryUseCase(
	skuRepo repository.SKURepository,
	snapshots repository.StockSnapshotRepository,
	movements repository.StockMovementRepository,
	cache AvailabilityCache,
) *QueryUseCase {
	return &QueryUseCase{
		skuRepo:   skuRepo,
		snapshots: snapshots,
		movements: movements,
		cache:     cache,
	}
}

// Availability devuelve cantidad, reservado y disponible de un SKU.
// Lee a través del caché TTL; un acierto puede estar desfasado hasta el TTL.
func (uc *QueryUseCase) Availability(ctx context.Context, skuID string) (Availability, error) {
	if skuID == "" {
		return Availability{}, domain.ErrInvalidInput
	}
	if av, ok := uc.cache.Get(skuID); ok {
		return av, nil
	}
	sku, err := uc.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return Availability{}, err
	}
	if sku == nil {
		return Availability{}, domain.ErrNotFound
	}
	snap, err := uc.snapshots.Get(ctx, skuID)
	if err != nil {
		return Availability{}, err
	}
	av := Availability{
		SKUID:     skuID,
		Quantity:  snap.Quantity,
		Reserved:  snap.Reserved,
		Available: snap.Available(),
	}
	uc.cache.Set(skuID, av)
	return av, nil
}

// AvailableQuantity devuelve max(0, quantity - reserved) para un SKU.
func (uc *QueryUseCase) AvailableQuantity(ctx context.Context, skuID string) (int64, error) {
	av, err := uc.Availability(ctx, skuID)
	if err != nil {
		return 0, err
	}
	return av.Available, nil
}

// IsAvailable indica si hay al menos qty unidades disponibles.
func (uc *QueryUseCase) IsAvailable(ctx context.Context, skuID string, qty int64) (bool, error) {
	if qty <= 0 {
		return false, domain.ErrInvalidInput
	}
	av, err := uc.AvailableQuantity(ctx, skuID)
	if err != nil {
		return false, err
	}
	return av >= qty, nil
}

// BulkAvailability devuelve la disponibilidad de un lote de SKUs en una sola
// ida a la base. SKUs sin snapshot aparecen en cero. No pasa por el caché:
// las pantallas de listado pegan directo a la base.
func (uc *QueryUseCase) BulkAvailability(ctx context.Context, skuIDs []string) (map[string]Availability, error) {
	if len(skuIDs) == 0 {
		return map[string]Availability{}, nil
	}
	snaps, err := uc.snapshots.GetMany(ctx, skuIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Availability, len(skuIDs))
	for _, id := range skuIDs {
		out[id] = Availability{SKUID: id}
	}
	for _, snap := range snaps {
		out[snap.SKUID] = Availability{
			SKUID:     snap.SKUID,
			Quantity:  snap.Quantity,
			Reserved:  snap.Reserved,
			Available: snap.Available(),
		}
	}
	return out, nil
}

// HistoryFilter filtros del historial de movimientos.
type HistoryFilter struct {
	Page     int
	PageSize int
	From     *time.Time
	To       *time.Time
}

// HistoryPage página de movimientos en orden cronológico inverso.
type HistoryPage struct {
	Entries  []*entity.MovementEntry
	Page     int
	PageSize int
	Total    int
}

// History devuelve el historial de movimientos de un SKU, paginado y con
// rango de fechas opcional.
func (uc *QueryUseCase) History(ctx context.Context, skuID string, filter HistoryFilter) (*HistoryPage, error) {
	if skuID == "" {
		return nil, domain.ErrInvalidInput
	}
	sku, err := uc.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	offset := (filter.Page - 1) * filter.PageSize

	entries, err := uc.movements.ListBySKU(ctx, skuID, filter.From, filter.To, filter.PageSize, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movements.CountBySKU(ctx, skuID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Entries:  entries,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}
