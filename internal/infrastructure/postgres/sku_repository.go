package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación del registro de SKUs sobre PostgreSQL.
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

// Create registra un SKU; ErrDuplicate si el código ya existe.
func (r *SKURepo) Create(ctx context.Context, sku *entity.SKU) error {
	query := `
		INSERT INTO skus (id, code, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, sku.ID, sku.Code, sku.Name, sku.Active, sku.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sku: %w", err)
	}
	return nil
}

// GetByID obtiene un SKU por ID; nil, nil si no existe.
func (r *SKURepo) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	query := `SELECT id, code, name, active, created_at FROM skus WHERE id = $1`
	var s entity.SKU
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return &s, nil
}

// GetByCode obtiene un SKU por código único; nil, nil si no existe.
func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	query := `SELECT id, code, name, active, created_at FROM skus WHERE code = $1`
	var s entity.SKU
	err := r.q.QueryRow(ctx, query, code).Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku by code: %w", err)
	}
	return &s, nil
}

// List devuelve el catálogo ordenado por código.
func (r *SKURepo) List(ctx context.Context, limit, offset int) ([]*entity.SKU, error) {
	query := `
		SELECT id, code, name, active, created_at
		FROM skus ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKU
	for rows.Next() {
		var s entity.SKU
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
