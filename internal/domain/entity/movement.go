package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada (compra)
	MovementTypeOut        = "out"        // salida (venta)
	MovementTypeAdjustment = "adjustment" // ajuste por conteo físico
	MovementTypeReturn     = "return"     // devolución a proveedor / de cliente
	MovementTypeExpire     = "expire"     // baja por vencimiento o merma
)

// ValidMovementType verifica que el tipo pertenezca al catálogo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeReturn, MovementTypeExpire:
		return true
	}
	return false
}

// Reference apunta al documento de negocio que causó el movimiento
// (orden de compra, factura, nota de ajuste, etc.).
type Reference struct {
	Type string
	ID   string
}

// MovementEntry es una entrada del libro de movimientos: registro inmutable
// de cada cambio de cantidad. Nunca se actualiza ni se borra; una entrada por
// operación del libro de stock.
type MovementEntry struct {
	ID             string
	SKUID          string
	Type           string
	Quantity       int64 // magnitud del cambio, siempre > 0
	QuantityBefore int64
	QuantityAfter  int64
	ReferenceType  string
	ReferenceID    string
	UnitCostIn     *int64 // costo unitario si fue entrada
	UnitPriceOut   *int64 // precio unitario si fue salida (solo para reportes de margen)
	ActorID        string
	Notes          string
	OccurredAt     time.Time
}
