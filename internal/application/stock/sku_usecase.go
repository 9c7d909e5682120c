package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

// SKUUseCase administra el registro mínimo de SKUs. El catálogo completo de
// productos (precios, categorías, imágenes) vive en otro servicio.
type SKUUseCase struct {
	skuRepo   repository.SKURepository
	snapshots repository.StockSnapshotRepository
}

// NewSKUUseCase construye el caso de uso.
func NewSKUUseCase(skuRepo repository.SKURepository, snapshots repository.StockSnapshotRepository) *SKUUseCase {
	return &SKUUseCase{skuRepo: skuRepo, snapshots: snapshots}
}

// Create registra un SKU y materializa de una vez su snapshot en cero, para
// que las lecturas posteriores no dependan de la primera mutación.
func (uc *SKUUseCase) Create(ctx context.Context, code, name string) (*entity.SKU, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	sku := &entity.SKU{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.skuRepo.Create(ctx, sku); err != nil {
		return nil, err
	}
	snap := &entity.StockSnapshot{SKUID: sku.ID, UpdatedAt: sku.CreatedAt}
	if err := uc.snapshots.Save(ctx, snap); err != nil {
		return nil, err
	}
	return sku, nil
}

// GetByID devuelve un SKU; ErrNotFound si no existe.
func (uc *SKUUseCase) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sku, err := uc.skuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	return sku, nil
}

// List devuelve el catálogo paginado.
func (uc *SKUUseCase) List(ctx context.Context, limit, offset int) ([]*entity.SKU, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.skuRepo.List(ctx, limit, offset)
}
