package dto

import "time"

// IncreaseStockRequest entrada de stock (compra, devolución de cliente, ajuste+).
// unit_cost es opcional: si viene, se recalcula el costo promedio ponderado.
type IncreaseStockRequest struct {
	SKUID         string `json:"sku_id"`
	Quantity      int64  `json:"quantity"`
	Type          string `json:"type"` // in, return, adjustment
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	Notes         string `json:"notes"`
	UnitCost      *int64 `json:"unit_cost,omitempty"`
}

// DecreaseStockRequest salida de stock (venta, merma, ajuste-, devolución a proveedor).
// enforce_availability activa la política "no sobrevender" del caller.
type DecreaseStockRequest struct {
	SKUID               string `json:"sku_id"`
	Quantity            int64  `json:"quantity"`
	Type                string `json:"type"` // out, expire, adjustment, return
	ReferenceType       string `json:"reference_type"`
	ReferenceID         string `json:"reference_id"`
	Notes               string `json:"notes"`
	UnitPrice           *int64 `json:"unit_price,omitempty"`
	EnforceAvailability bool   `json:"enforce_availability"`
}

// MovementCreatedResponse respuesta de una mutación que creó movimiento.
type MovementCreatedResponse struct {
	MovementID string `json:"movement_id"`
}

// DecreaseStockResponse respuesta de una disminución.
type DecreaseStockResponse struct {
	Success    bool   `json:"success"`
	MovementID string `json:"movement_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ReserveStockRequest reserva de unidades para un carrito en curso.
type ReserveStockRequest struct {
	SKUID    string `json:"sku_id"`
	Quantity int64  `json:"quantity"`
}

// ReleaseStockRequest liberación de unidades reservadas.
type ReleaseStockRequest struct {
	SKUID    string `json:"sku_id"`
	Quantity int64  `json:"quantity"`
}

// StatusResponse respuesta simple de éxito con mensaje opcional.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BulkAvailabilityRequest lote de SKUs para validar disponibilidad de carrito.
type BulkAvailabilityRequest struct {
	SKUIDs []string `json:"sku_ids"`
}

// MovementDTO entrada del libro de movimientos en respuestas.
type MovementDTO struct {
	ID             string    `json:"id"`
	SKUID          string    `json:"sku_id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	UnitCostIn     *int64    `json:"unit_cost_in,omitempty"`
	UnitPriceOut   *int64    `json:"unit_price_out,omitempty"`
	ActorID        string    `json:"actor_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MovementHistoryResponse página del historial de movimientos.
type MovementHistoryResponse struct {
	PageResponse
	Movements []MovementDTO `json:"movements"`
}

// CreateSKURequest registro mínimo de un SKU.
type CreateSKURequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SKUResponse SKU en respuestas.
type SKUResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
