package stock

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado
// (servicio de dominio) sobre montos enteros.
// NuevoCosto = ceil( ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada) )
// Si el stock previo es cero o negativo, el costo de la entrada pasa a ser el promedio.
// El redondeo es siempre hacia arriba para no subvaluar el inventario.
func WeightedAverageCost(prevQty, prevCost, inQty, inCost int64) int64 {
	if prevQty <= 0 {
		return inCost
	}
	num := decimal.NewFromInt(prevQty).Mul(decimal.NewFromInt(prevCost)).
		Add(decimal.NewFromInt(inQty).Mul(decimal.NewFromInt(inCost)))
	den := decimal.NewFromInt(prevQty + inQty)

	// División entera exacta: QuoRem trunca hacia cero; con montos no
	// negativos basta sumar 1 cuando hay resto para obtener el techo.
	quo, rem := num.QuoRem(den, 0)
	if !rem.IsZero() {
		return quo.IntPart() + 1
	}
	return quo.IntPart()
}
