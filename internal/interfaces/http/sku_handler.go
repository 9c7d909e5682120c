package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-core-api/internal/application/dto"
	"github.com/jhoicas/stock-core-api/internal/application/stock"
	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/entity"
)

// SKUHandler maneja el registro mínimo de SKUs (protegido).
type SKUHandler struct {
	uc *stock.SKUUseCase
}

// NewSKUHandler construye el handler.
func NewSKUHandler(uc *stock.SKUUseCase) *SKUHandler {
	return &SKUHandler{uc: uc}
}

func skuToDTO(s *entity.SKU) dto.SKUResponse {
	return dto.SKUResponse{ID: s.ID, Code: s.Code, Name: s.Name, Active: s.Active, CreatedAt: s.CreatedAt}
}

// Create godoc
// @Summary      Registrar un SKU
// @Tags         skus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSKURequest  true  "code, name"
// @Success      201   {object}  dto.SKUResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/skus [post]
func (h *SKUHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sku, err := h.uc.Create(c.Context(), in.Code, in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son obligatorios"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(skuToDTO(sku))
}

// GetByID godoc
// @Summary      Consultar un SKU
// @Tags         skus
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "SKU (UUID)"
// @Success      200  {object}  dto.SKUResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/skus/{id} [get]
func (h *SKUHandler) GetByID(c *fiber.Ctx) error {
	sku, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(skuToDTO(sku))
}

// List godoc
// @Summary      Listar SKUs
// @Tags         skus
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "página (desde 1)"
// @Param        page_size  query  int  false  "tamaño de página (máx 100)"
// @Success      200  {array}  dto.SKUResponse
// @Router       /api/skus [get]
func (h *SKUHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page"), PageSize: c.QueryInt("page_size")}
	page.DefaultPage()
	skus, err := h.uc.List(c.Context(), page.PageSize, (page.Page-1)*page.PageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	out := make([]dto.SKUResponse, 0, len(skus))
	for _, s := range skus {
		out = append(out, skuToDTO(s))
	}
	return c.JSON(out)
}
