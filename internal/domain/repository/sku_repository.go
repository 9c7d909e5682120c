package repository

import (
	"context"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
)

// SKURepository define el puerto del registro mínimo de SKUs.
// Las operaciones de stock lo usan para validar existencia (NotFound).
type SKURepository interface {
	Create(ctx context.Context, sku *entity.SKU) error
	// GetByID devuelve nil, nil si el SKU no existe.
	GetByID(ctx context.Context, id string) (*entity.SKU, error)
	GetByCode(ctx context.Context, code string) (*entity.SKU, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SKU, error)
}
