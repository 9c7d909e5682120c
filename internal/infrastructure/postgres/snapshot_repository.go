package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de StockSnapshotRepository sobre PostgreSQL
// (usable con pool o tx).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Get obtiene el snapshot de un SKU; si no hay fila devuelve el snapshot en cero.
func (r *SnapshotRepo) Get(ctx context.Context, skuID string) (*entity.StockSnapshot, error) {
	query := `
		SELECT sku_id, quantity, reserved, average_cost, updated_at
		FROM stock_snapshots WHERE sku_id = $1`
	var s entity.StockSnapshot
	err := r.q.QueryRow(ctx, query, skuID).Scan(
		&s.SKUID, &s.Quantity, &s.Reserved, &s.AverageCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSnapshot{SKUID: skuID}, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el snapshot y bloquea la fila (SELECT FOR UPDATE).
// Si la fila aún no existe la inserta en cero primero: sin fila no hay nada
// que bloquear y dos primeras mutaciones concurrentes podrían pisarse.
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, skuID string) (*entity.StockSnapshot, error) {
	insert := `
		INSERT INTO stock_snapshots (sku_id, quantity, reserved, average_cost, updated_at)
		VALUES ($1, 0, 0, 0, now())
		ON CONFLICT (sku_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, skuID); err != nil {
		return nil, fmt.Errorf("materializar snapshot: %w", err)
	}

	query := `
		SELECT sku_id, quantity, reserved, average_cost, updated_at
		FROM stock_snapshots WHERE sku_id = $1
		FOR UPDATE`
	var s entity.StockSnapshot
	err := r.q.QueryRow(ctx, query, skuID).Scan(
		&s.SKUID, &s.Quantity, &s.Reserved, &s.AverageCost, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get snapshot for update: %w", err)
	}
	return &s, nil
}

// Save inserta o actualiza el snapshot (por SKU).
func (r *SnapshotRepo) Save(ctx context.Context, snapshot *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (sku_id, quantity, reserved, average_cost, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (sku_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              reserved = EXCLUDED.reserved,
		              average_cost = EXCLUDED.average_cost,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query, snapshot.SKUID, snapshot.Quantity, snapshot.Reserved, snapshot.AverageCost)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// GetMany devuelve los snapshots existentes para un lote de SKUs en una sola consulta.
func (r *SnapshotRepo) GetMany(ctx context.Context, skuIDs []string) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT sku_id, quantity, reserved, average_cost, updated_at
		FROM stock_snapshots WHERE sku_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, skuIDs)
	if err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.SKUID, &s.Quantity, &s.Reserved, &s.AverageCost, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
