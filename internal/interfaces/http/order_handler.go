package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/dto"
	"github.com/jcastano/cadena-api/internal/application/procurement"
)

// OrderHandler maneja órdenes de compra y su recepción (protegido).
type OrderHandler struct {
	orders  *procurement.OrderUseCase
	receive *procurement.ReceiveUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *procurement.OrderUseCase, receive *procurement.ReceiveUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, receive: receive}
}

// Create crea una orden PENDING. Las líneas con quantity 0 reciben la
// cantidad sugerida de reposición calculada del stock actual.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := procurement.CreateOrderInput{
		Section:   GetSection(c),
		CreatedBy: GetCallerID(c),
		Notes:     in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, procurement.OrderLineInput{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	order, err := h.orders.Create(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderToResponse(order))
}

// Get consulta una orden por id.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OrderToResponse(order))
}

// List lista las órdenes de la sección del caller.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	orders, err := h.orders.List(c.Context(), GetSection(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderToResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// Receive ejecuta la recepción best-effort de la orden. La respuesta incluye
// las líneas fallidas para reintento; la orden solo pasa a RECEIVED si todas
// las líneas incrementaron stock.
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	result, err := h.receive.Receive(c.Context(), GetCallerID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ReceiveResponse{
		Order:           dto.OrderToResponse(result.Order),
		Failed:          result.Failed,
		AdjustedItemIDs: result.AdjustedItemIDs,
	})
}

// Cancel pasa la orden de PENDING a CANCELLED.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.orders.Cancel(c.Context(), GetCallerID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OrderToResponse(order))
}
