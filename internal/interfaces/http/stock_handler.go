package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-core-api/internal/application/dto"
	"github.com/jhoicas/stock-core-api/internal/application/stock"
	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
	"github.com/jhoicas/stock-core-api/pkg/logger"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	ledger *stock.LedgerUseCase
	query  *stock.QueryUseCase
	log    *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, query *stock.QueryUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{ledger: ledger, query: query, log: log}
}

// mapDomainError traduce errores de dominio a respuestas HTTP. Los errores no
// clasificados (fallos de persistencia) se registran con su causa y salen con
// mensaje genérico.
func (h *StockHandler) mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrLockTimeout):
		// Transitorio: el caller puede reintentar con backoff acotado.
		return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "el SKU está ocupado, reintente"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("fallo de persistencia en operación de stock")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// Increase godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IncreaseStockRequest  true  "sku_id, quantity, type (in/return/adjustment), reference, unit_cost opcional"
// @Success      201   {object}  dto.MovementCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/stock/increase [post]
func (h *StockHandler) Increase(c *fiber.Ctx) error {
	var in dto.IncreaseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movementID, err := h.ledger.Increase(c.Context(), stock.IncreaseInput{
		SKUID:     in.SKUID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reference: entity.Reference{Type: in.ReferenceType, ID: in.ReferenceID},
		ActorID:   GetActorID(c),
		Notes:     in.Notes,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return h.mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreatedResponse{MovementID: movementID})
}

// Decrease godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecreaseStockRequest  true  "sku_id, quantity, type (out/expire/adjustment/return), enforce_availability opcional"
// @Success      200   {object}  dto.DecreaseStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/stock/decrease [post]
func (h *StockHandler) Decrease(c *fiber.Ctx) error {
	var in dto.DecreaseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ledger.Decrease(c.Context(), stock.DecreaseInput{
		SKUID:               in.SKUID,
		Quantity:            in.Quantity,
		Type:                in.Type,
		Reference:           entity.Reference{Type: in.ReferenceType, ID: in.ReferenceID},
		ActorID:             GetActorID(c),
		Notes:               in.Notes,
		UnitPrice:           in.UnitPrice,
		EnforceAvailability: in.EnforceAvailability,
	})
	if err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(dto.DecreaseStockResponse{Success: res.Success, MovementID: res.MovementID, Reason: res.Reason})
}

// Reserve godoc
// @Summary      Reservar unidades para un carrito
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "sku_id, quantity"
// @Success      200   {object}  dto.StatusResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.Reserve(c.Context(), in.SKUID, in.Quantity, GetActorID(c)); err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "unidades reservadas"})
}

// Release godoc
// @Summary      Liberar unidades reservadas
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReleaseStockRequest  true  "sku_id, quantity"
// @Success      200   {object}  dto.StatusResponse
// @Router       /api/stock/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.Release(c.Context(), in.SKUID, in.Quantity); err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true})
}

// Availability godoc
// @Summary      Disponibilidad de un SKU
// @Description  Devuelve cantidad, reservado y disponible. Con ?qty= responde
//	además si alcanza para esa cantidad. Lectura cacheada (TTL corto):
//	nunca usarla para decidir una mutación.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        sku_id  path   string  true   "SKU (UUID)"
// @Param        qty     query  int     false  "cantidad a validar"
// @Success      200  {object}  stock.Availability
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{sku_id}/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	skuID := c.Params("sku_id")
	av, err := h.query.Availability(c.Context(), skuID)
	if err != nil {
		return h.mapDomainError(c, err)
	}
	if qty := c.QueryInt("qty"); qty > 0 {
		return c.JSON(fiber.Map{
			"sku_id":       av.SKUID,
			"quantity":     av.Quantity,
			"reserved":     av.Reserved,
			"available":    av.Available,
			"is_available": av.Available >= int64(qty),
		})
	}
	return c.JSON(av)
}

// BulkAvailability godoc
// @Summary      Disponibilidad de un lote de SKUs
// @Description  Una sola ida a la base para validar un carrito completo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAvailabilityRequest  true  "sku_ids"
// @Success      200   {object}  map[string]stock.Availability
// @Router       /api/stock/availability [post]
func (h *StockHandler) BulkAvailability(c *fiber.Ctx) error {
	var in dto.BulkAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.query.BulkAvailability(c.Context(), in.SKUIDs)
	if err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un SKU
// @Description  Orden cronológico inverso, paginado, con rango de fechas
//	opcional (from/to en RFC3339).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        sku_id     path   string  true   "SKU (UUID)"
// @Param        page       query  int     false  "página (desde 1)"
// @Param        page_size  query  int     false  "tamaño de página (máx 100)"
// @Param        from       query  string  false  "fecha inicial RFC3339"
// @Param        to         query  string  false  "fecha final RFC3339"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{sku_id}/movements [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	skuID := c.Params("sku_id")
	filter := stock.HistoryFilter{
		Page:     c.QueryInt("page"),
		PageSize: c.QueryInt("page_size"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	page, err := h.query.History(c.Context(), skuID, filter)
	if err != nil {
		return h.mapDomainError(c, err)
	}
	out := dto.MovementHistoryResponse{
		PageResponse: dto.PageResponse{Page: page.Page, PageSize: page.PageSize, Total: page.Total},
		Movements:    make([]dto.MovementDTO, 0, len(page.Entries)),
	}
	for _, m := range page.Entries {
		out.Movements = append(out.Movements, dto.MovementDTO{
			ID:             m.ID,
			SKUID:          m.SKUID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			UnitCostIn:     m.UnitCostIn,
			UnitPriceOut:   m.UnitPriceOut,
			ActorID:        m.ActorID,
			Notes:          m.Notes,
			OccurredAt:     m.OccurredAt,
		})
	}
	return c.JSON(out)
}
