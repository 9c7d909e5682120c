package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jhoicas/stock-core-api/internal/application/stock"
)

var _ stock.AvailabilityCache = (*AvailabilityLRU)(nil)

// AvailabilityLRU caché de disponibilidad en memoria con TTL fijo, para la
// consulta puntual de alta frecuencia (pantalla de venta). Nunca es fuente de
// verdad: la ruta de mutación solo la invalida.
type AvailabilityLRU struct {
	lru *expirable.LRU[string, stock.Availability]
}

// NewAvailabilityLRU construye el caché con capacidad máxima y TTL.
func NewAvailabilityLRU(size int, ttl time.Duration) *AvailabilityLRU {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AvailabilityLRU{lru: expirable.NewLRU[string, stock.Availability](size, nil, ttl)}
}

func (c *AvailabilityLRU) Get(skuID string) (stock.Availability, bool) {
	return c.lru.Get(skuID)
}

func (c *AvailabilityLRU) Set(skuID string, av stock.Availability) {
	c.lru.Add(skuID, av)
}

func (c *AvailabilityLRU) Remove(skuID string) {
	c.lru.Remove(skuID)
}
