package entity

import "time"

// SKU representa una unidad de inventario registrada (referencia mínima).
// El CRUD completo de productos vive en otro servicio; aquí solo se necesita
// la existencia del SKU para validar operaciones de stock.
type SKU struct {
	ID        string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
}
