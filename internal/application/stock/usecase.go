package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
	domstock "github.com/jhoicas/stock-core-api/internal/domain/stock"
	"github.com/jhoicas/stock-core-api/pkg/logger"
)

// LedgerUseCase es el punto de entrada de todas las mutaciones de stock:
// Increase, Decrease, Reserve y Release. Cada operación abre una transacción,
// bloquea la fila del snapshot (SELECT FOR UPDATE), aplica el cambio, escribe
// el movimiento (y el historial de costo si aplica) y hace Commit o Rollback.
// Operaciones sobre el mismo SKU quedan estrictamente serializadas; sobre SKUs
// distintos corren en paralelo.
type LedgerUseCase struct {
	txRunner TxRunner
	skuRepo  repository.SKURepository
	cache    AvailabilityCache
	notifier Notifier
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	skuRepo repository.SKURepository,
	cache AvailabilityCache,
	notifier Notifier,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		skuRepo:  skuRepo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// IncreaseInput entrada para registrar un aumento de stock.
// UnitCost es opcional: si viene, se recalcula el costo promedio ponderado.
type IncreaseInput struct {
	SKUID     string
	Quantity  int64
	Type      string // in, return, adjustment
	Reference entity.Reference
	ActorID   string
	Notes     string
	UnitCost  *int64
}

// DecreaseInput entrada para registrar una disminución de stock.
// EnforceAvailability activa la política del caller "no sobrevender": si el
// disponible es menor que Quantity, la operación no escribe nada y devuelve
// Success=false con la razón. Sin el flag, la cantidad puede quedar negativa.
type DecreaseInput struct {
	SKUID               string
	Quantity            int64
	Type                string // out, expire, adjustment, return
	Reference           entity.Reference
	ActorID             string
	Notes               string
	UnitPrice           *int64
	EnforceAvailability bool
}

// DecreaseResult resultado de una disminución.
type DecreaseResult struct {
	Success    bool
	MovementID string
	Reason     string
}

func validIncreaseType(t string) bool {
	return t == entity.MovementTypeIn || t == entity.MovementTypeReturn || t == entity.MovementTypeAdjustment
}

func validDecreaseType(t string) bool {
	return t == entity.MovementTypeOut || t == entity.MovementTypeExpire ||
		t == entity.MovementTypeAdjustment || t == entity.MovementTypeReturn
}

// requireSKU valida que el SKU exista antes de tocar la base transaccional.
func (uc *LedgerUseCase) requireSKU(ctx context.Context, skuID string) error {
	sku, err := uc.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return err
	}
	if sku == nil {
		return domain.ErrNotFound
	}
	return nil
}

// Increase suma Quantity al stock del SKU. Si viene UnitCost recalcula el
// costo promedio ponderado y, si el promedio cambió, escribe una entrada en el
// historial de costo. Devuelve el ID del movimiento creado.
func (uc *LedgerUseCase) Increase(ctx context.Context, input IncreaseInput) (string, error) {
	if input.SKUID == "" || input.Quantity <= 0 || !validIncreaseType(input.Type) {
		return "", domain.ErrInvalidInput
	}
	if input.UnitCost != nil && *input.UnitCost < 0 {
		return "", domain.ErrInvalidInput
	}
	if err := uc.requireSKU(ctx, input.SKUID); err != nil {
		return "", err
	}

	now := time.Now()
	movementID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		snapshots repository.StockSnapshotRepository,
		movements repository.StockMovementRepository,
		costHistory repository.CostHistoryRepository,
	) error {
		// Bloquea la fila del snapshot para evitar condiciones de carrera
		snap, err := snapshots.GetForUpdate(ctx, input.SKUID)
		if err != nil {
			return err
		}
		before := snap.Quantity
		snap.Quantity = before + input.Quantity

		// Motor de costos: solo entradas con costo recalculan el promedio
		if input.UnitCost != nil {
			newCost := domstock.WeightedAverageCost(before, snap.AverageCost, input.Quantity, *input.UnitCost)
			if newCost != snap.AverageCost {
				entry := &entity.CostHistoryEntry{
					ID:                  uuid.New().String(),
					SKUID:               input.SKUID,
					PreviousAverageCost: snap.AverageCost,
					NewAverageCost:      newCost,
					TriggerType:         input.Type,
					ReferenceID:         input.Reference.ID,
					ActorID:             input.ActorID,
					OccurredAt:          now,
				}
				if err := costHistory.Create(ctx, entry); err != nil {
					return err
				}
				snap.AverageCost = newCost
			}
		}

		snap.UpdatedAt = now
		if err := snapshots.Save(ctx, snap); err != nil {
			return err
		}
		mov := &entity.MovementEntry{
			ID:             movementID,
			SKUID:          input.SKUID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			QuantityBefore: before,
			QuantityAfter:  snap.Quantity,
			ReferenceType:  input.Reference.Type,
			ReferenceID:    input.Reference.ID,
			UnitCostIn:     input.UnitCost,
			ActorID:        input.ActorID,
			Notes:          input.Notes,
			OccurredAt:     now,
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}

	uc.afterMutation(ctx, input.SKUID, movementID)
	return movementID, nil
}

// Decrease resta Quantity al stock del SKU. No exige que la cantidad quede en
// cero o más salvo que el caller active EnforceAvailability; en ese caso, si
// el disponible no alcanza, no se escribe nada y Success es false.
// Las salidas nunca tocan el historial de costo.
func (uc *LedgerUseCase) Decrease(ctx context.Context, input DecreaseInput) (DecreaseResult, error) {
	if input.SKUID == "" || input.Quantity <= 0 || !validDecreaseType(input.Type) {
		return DecreaseResult{}, domain.ErrInvalidInput
	}
	if err := uc.requireSKU(ctx, input.SKUID); err != nil {
		return DecreaseResult{}, err
	}

	now := time.Now()
	movementID := uuid.New().String()
	result := DecreaseResult{}

	err := uc.txRunner.Run(ctx, func(
		snapshots repository.StockSnapshotRepository,
		movements repository.StockMovementRepository,
		_ repository.CostHistoryRepository,
	) error {
		snap, err := snapshots.GetForUpdate(ctx, input.SKUID)
		if err != nil {
			return err
		}
		// Política del caller: revalidar disponibilidad bajo el bloqueo,
		// nunca contra una lectura previa (posiblemente cacheada).
		if input.EnforceAvailability && snap.Available() < input.Quantity {
			result = DecreaseResult{Success: false, Reason: domain.ErrInsufficientStock.Error()}
			return nil
		}
		before := snap.Quantity
		snap.Quantity = before - input.Quantity
		snap.UpdatedAt = now
		if err := snapshots.Save(ctx, snap); err != nil {
			return err
		}
		mov := &entity.MovementEntry{
			ID:             movementID,
			SKUID:          input.SKUID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			QuantityBefore: before,
			QuantityAfter:  snap.Quantity,
			ReferenceType:  input.Reference.Type,
			ReferenceID:    input.Reference.ID,
			UnitPriceOut:   input.UnitPrice,
			ActorID:        input.ActorID,
			Notes:          input.Notes,
			OccurredAt:     now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		result = DecreaseResult{Success: true, MovementID: movementID}
		return nil
	})
	if err != nil {
		return DecreaseResult{}, err
	}

	if result.Success {
		uc.afterMutation(ctx, input.SKUID, movementID)
	}
	return result, nil
}

// Reserve aparta Quantity unidades para un carrito en curso. Valida el
// disponible bajo el bloqueo de fila; no toca Quantity ni el libro de
// movimientos. El checkout convierte la reserva en Decrease + Release.
func (uc *LedgerUseCase) Reserve(ctx context.Context, skuID string, qty int64, actorID string) error {
	if skuID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireSKU(ctx, skuID); err != nil {
		return err
	}
	_ = actorID // la reserva no deja rastro en el libro; el actor queda en el movimiento del checkout

	err := uc.txRunner.Run(ctx, func(
		snapshots repository.StockSnapshotRepository,
		_ repository.StockMovementRepository,
		_ repository.CostHistoryRepository,
	) error {
		snap, err := snapshots.GetForUpdate(ctx, skuID)
		if err != nil {
			return err
		}
		if snap.Available() < qty {
			return domain.ErrInsufficientStock
		}
		snap.Reserved += qty
		snap.UpdatedAt = time.Now()
		return snapshots.Save(ctx, snap)
	})
	if err != nil {
		return err
	}
	uc.cache.Remove(skuID)
	return nil
}

// Release libera Quantity unidades reservadas, con piso en cero: liberar más
// de lo reservado nunca deja Reserved negativo.
func (uc *LedgerUseCase) Release(ctx context.Context, skuID string, qty int64) error {
	if skuID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireSKU(ctx, skuID); err != nil {
		return err
	}

	err := uc.txRunner.Run(ctx, func(
		snapshots repository.StockSnapshotRepository,
		_ repository.StockMovementRepository,
		_ repository.CostHistoryRepository,
	) error {
		snap, err := snapshots.GetForUpdate(ctx, skuID)
		if err != nil {
			return err
		}
		snap.Reserved -= qty
		if snap.Reserved < 0 {
			snap.Reserved = 0
		}
		snap.UpdatedAt = time.Now()
		return snapshots.Save(ctx, snap)
	})
	if err != nil {
		return err
	}
	uc.cache.Remove(skuID)
	return nil
}

// afterMutation invalida el caché de disponibilidad y notifica el cambio.
// El fallo del notificador no revierte la operación ya confirmada.
func (uc *LedgerUseCase) afterMutation(ctx context.Context, skuID, movementID string) {
	uc.cache.Remove(skuID)
	if err := uc.notifier.StockChanged(ctx, skuID, movementID); err != nil {
		uc.log.Warn().Err(err).
			Str("sku_id", skuID).
			Str("movement_id", movementID).
			Msg("no se pudo notificar el cambio de stock")
	}
}
