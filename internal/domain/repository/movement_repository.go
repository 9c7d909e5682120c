package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos (append-only; nunca update ni delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.MovementEntry) error
	GetByID(ctx context.Context, id string) (*entity.MovementEntry, error)
	// ListBySKU lista movimientos de un SKU en orden cronológico inverso,
	// con rango de fechas opcional y paginación limit/offset.
	ListBySKU(ctx context.Context, skuID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error)
	// CountBySKU cuenta los movimientos que cumplen el mismo filtro (total de página).
	CountBySKU(ctx context.Context, skuID string, from, to *time.Time) (int, error)
}
