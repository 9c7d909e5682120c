package entity

import "time"

// StockSnapshot representa el estado actual de un SKU: cantidad, reservado y
// costo promedio. Una fila por SKU; solo el libro de stock la muta, siempre
// bajo bloqueo de fila (SELECT FOR UPDATE).
type StockSnapshot struct {
	SKUID       string
	Quantity    int64 // puede ser negativo (política de sobreventa, ver Decrease)
	Reserved    int64 // invariante: >= 0
	AverageCost int64 // unidad monetaria entera, sin centavos
	UpdatedAt   time.Time
}

// Available devuelve la cantidad disponible: max(0, Quantity - Reserved).
func (s *StockSnapshot) Available() int64 {
	if av := s.Quantity - s.Reserved; av > 0 {
		return av
	}
	return 0
}
