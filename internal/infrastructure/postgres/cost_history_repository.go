package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo implementación del historial de costo promedio sobre
// PostgreSQL (usable con pool o tx). Tabla append-only.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

// Create persiste una entrada del historial de costo.
func (r *CostHistoryRepo) Create(ctx context.Context, entry *entity.CostHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_cost_history (id, sku_id, previous_average_cost, new_average_cost, trigger_type, reference_id, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	actorID := (*string)(nil)
	if entry.ActorID != "" {
		actorID = &entry.ActorID
	}
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.SKUID, entry.PreviousAverageCost, entry.NewAverageCost,
		entry.TriggerType, entry.ReferenceID, actorID, entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create cost history: %w", err)
	}
	return nil
}

// ListBySKU lista el historial de costo de un SKU, el cambio más reciente primero.
func (r *CostHistoryRepo) ListBySKU(ctx context.Context, skuID string, limit, offset int) ([]*entity.CostHistoryEntry, error) {
	query := `
		SELECT id, sku_id, previous_average_cost, new_average_cost, trigger_type, reference_id, actor_id, occurred_at
		FROM stock_cost_history WHERE sku_id = $1
		ORDER BY occurred_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, skuID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost history: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostHistoryEntry
	for rows.Next() {
		var e entity.CostHistoryEntry
		var actorID *string
		if err := rows.Scan(&e.ID, &e.SKUID, &e.PreviousAverageCost, &e.NewAverageCost,
			&e.TriggerType, &e.ReferenceID, &actorID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan cost history: %w", err)
		}
		if actorID != nil {
			e.ActorID = *actorID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
