package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, sku_id, type, quantity, quantity_before, quantity_after,
		reference_type, reference_id, unit_cost_in, unit_price_out, actor_id, notes, occurred_at`

// Create persiste una entrada del libro de movimientos.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.MovementEntry) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	actorID := (*string)(nil)
	if movement.ActorID != "" {
		actorID = &movement.ActorID
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.SKUID, movement.Type,
		movement.Quantity, movement.QuantityBefore, movement.QuantityAfter,
		movement.ReferenceType, movement.ReferenceID,
		movement.UnitCostIn, movement.UnitPriceOut,
		actorID, movement.Notes, movement.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	var actorID *string
	err := row.Scan(
		&m.ID, &m.SKUID, &m.Type, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.ReferenceType, &m.ReferenceID, &m.UnitCostIn, &m.UnitPriceOut,
		&actorID, &m.Notes, &m.OccurredAt,
	)
	if err != nil {
		return nil, err
	}
	if actorID != nil {
		m.ActorID = *actorID
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID; nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// dateFilter arma el fragmento opcional de rango de fechas sobre occurred_at.
func dateFilter(query string, args []any, from, to *time.Time) (string, []any) {
	pos := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
	}
	return query, args
}

// ListBySKU lista movimientos de un SKU en orden cronológico inverso,
// con rango de fechas opcional y paginación limit/offset.
func (r *MovementRepo) ListBySKU(ctx context.Context, skuID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE sku_id = $1`
	args := []any{skuID}
	query, args = dateFilter(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountBySKU cuenta los movimientos del SKU que cumplen el filtro de fechas.
func (r *MovementRepo) CountBySKU(ctx context.Context, skuID string, from, to *time.Time) (int, error) {
	query := `SELECT count(*) FROM stock_movements WHERE sku_id = $1`
	args := []any{skuID}
	query, args = dateFilter(query, args, from, to)

	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}
