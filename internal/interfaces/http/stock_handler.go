package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stocking"
)

// StockHandler maneja las peticiones HTTP del libro de inventario (protegido).
type StockHandler struct {
	uc *stocking.StockingUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stocking.StockingUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar compra de inventario
// @Description  Crea el lote y reconcilia los backorders del producto en una transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "Datos de la compra"
// @Success      201   {object}  dto.ReceiveStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.ReceiveStock(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatches godoc
// @Summary      Listar lotes de un producto
// @Description  Orden FIFO con la cantidad restante derivada de cada lote.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListBatches(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Available godoc
// @Summary      Stock disponible de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AvailableStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/available [get]
func (h *StockHandler) Available(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.AvailableStock(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Backorders pendientes de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.OutstandingStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/pending [get]
func (h *StockHandler) Pending(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.OutstandingBackorder(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
