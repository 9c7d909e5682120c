package repository

import (
	"context"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
)

// CostHistoryRepository define el puerto de persistencia del historial de
// costo promedio (append-only).
type CostHistoryRepository interface {
	Create(ctx context.Context, entry *entity.CostHistoryEntry) error
	ListBySKU(ctx context.Context, skuID string, limit, offset int) ([]*entity.CostHistoryEntry, error)
}
