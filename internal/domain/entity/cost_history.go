package entity

import "time"

// CostHistoryEntry registra un cambio del costo promedio de un SKU.
// Se crea solo cuando una entrada con costo modifica el promedio; las salidas
// nunca cambian el costo promedio del stock restante.
type CostHistoryEntry struct {
	ID                  string
	SKUID               string
	PreviousAverageCost int64
	NewAverageCost      int64
	TriggerType         string // tipo de movimiento que disparó el cambio
	ReferenceID         string
	ActorID             string
	OccurredAt          time.Time
}
