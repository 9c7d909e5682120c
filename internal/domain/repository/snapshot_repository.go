package repository

import (
	"context"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
)

// StockSnapshotRepository define el puerto para leer/actualizar el snapshot de
// stock por SKU. Las mutaciones se usan dentro de transacciones para
// garantizar consistencia.
type StockSnapshotRepository interface {
	// Get devuelve el snapshot; si no existe fila devuelve un snapshot en cero
	// (el snapshot se materializa de forma perezosa en la primera mutación).
	Get(ctx context.Context, skuID string) (*entity.StockSnapshot, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); crea la
	// fila en cero si aún no existe, para que el bloqueo sea efectivo.
	GetForUpdate(ctx context.Context, skuID string) (*entity.StockSnapshot, error)
	// Save inserta o actualiza el snapshot (por SKU).
	Save(ctx context.Context, snapshot *entity.StockSnapshot) error
	// GetMany devuelve los snapshots existentes para un lote de SKUs en una
	// sola ida a la base (pantallas de listado / validación de carrito).
	GetMany(ctx context.Context, skuIDs []string) ([]*entity.StockSnapshot, error)
}
