package stock

import (
	"context"

	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// snapshot, movimiento e historial de costo se escriben todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		snapshots repository.StockSnapshotRepository,
		movements repository.StockMovementRepository,
		costHistory repository.CostHistoryRepository,
	) error) error
}

// Notifier es el puerto de salida para avisar que el stock de un SKU cambió
// (dashboards en vivo, proyecciones). Un fallo al notificar nunca revierte la
// operación: se registra y se continúa.
type Notifier interface {
	StockChanged(ctx context.Context, skuID, movementID string) error
}

// NopNotifier implementación nula para tests y despliegues sin broker.
type NopNotifier struct{}

func (NopNotifier) StockChanged(context.Context, string, string) error { return nil }

// Availability disponibilidad de un SKU para pantallas de listado y carrito.
type Availability struct {
	SKUID     string `json:"sku_id"`
	Quantity  int64  `json:"quantity"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}

// AvailabilityCache es el puerto de caché de disponibilidad con TTL corto.
// Solo lo usa la ruta de lectura; la ruta de mutación únicamente invalida.
type AvailabilityCache interface {
	Get(skuID string) (Availability, bool)
	Set(skuID string, av Availability)
	Remove(skuID string)
}

// NopCache caché nula: nunca acierta, para tests y para desactivar el caché.
type NopCache struct{}

func (NopCache) Get(string) (Availability, bool) { return Availability{}, false }
func (NopCache) Set(string, Availability)        {}
func (NopCache) Remove(string)                   {}
