package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-core-api/internal/domain/stock"
)

// TestWeightedAverageCost_VectorConocido valida el vector de referencia del
// costeo: 100 unidades a 100000 más 50 unidades a 120000 deben promediar
// ceil(16_000_000 / 150) = 106667. Si alguien cambia la fórmula o el redondeo,
// este test falla de inmediato.
func TestWeightedAverageCost_VectorConocido(t *testing.T) {
	got := stock.WeightedAverageCost(100, 100000, 50, 120000)
	assert.Equal(t, int64(106667), got)
}

func TestWeightedAverageCost_StockPrevioCero(t *testing.T) {
	// Sin stock previo el promedio es directamente el costo de entrada.
	assert.Equal(t, int64(75000), stock.WeightedAverageCost(0, 0, 10, 75000))
}

func TestWeightedAverageCost_StockPrevioNegativo(t *testing.T) {
	// Sobreventa previa: el costo de la entrada reinicia el promedio.
	assert.Equal(t, int64(50000), stock.WeightedAverageCost(-5, 99999, 20, 50000))
}

func TestWeightedAverageCost_DivisionExacta(t *testing.T) {
	// (10*100 + 10*200) / 20 = 150 exacto, sin redondeo.
	assert.Equal(t, int64(150), stock.WeightedAverageCost(10, 100, 10, 200))
}

func TestWeightedAverageCost_RedondeoHaciaArriba(t *testing.T) {
	cases := []struct {
		name                           string
		prevQty, prevCost, inQty, inCost int64
		want                           int64
	}{
		// (1*100 + 2*101) / 3 = 100.66... -> 101
		{"resto pequeño", 1, 100, 2, 101, 101},
		// (3*1 + 1*2) / 4 = 1.25 -> 2
		{"resto grande", 3, 1, 1, 2, 2},
		// mismo costo en ambos lados: el promedio no cambia
		{"costos iguales", 7, 12345, 13, 12345, 12345},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.WeightedAverageCost(tc.prevQty, tc.prevCost, tc.inQty, tc.inCost))
		})
	}
}

// TestWeightedAverageCost_MontosGrandes verifica que montos de factura reales
// (miles de unidades, costos de millones) no pierden precisión.
func TestWeightedAverageCost_MontosGrandes(t *testing.T) {
	// (1_000_000*3_000_000 + 500_000*4_500_000) / 1_500_000 = 3_500_000 exacto
	got := stock.WeightedAverageCost(1_000_000, 3_000_000, 500_000, 4_500_000)
	assert.Equal(t, int64(3_500_000), got)
}
