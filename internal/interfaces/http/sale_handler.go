package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/dto"
	"github.com/jcastano/cadena-api/internal/application/sales"
)

// SaleHandler maneja las ventas de punto de venta (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// ProcessSale procesa una venta completa. O todas las líneas pasan la
// validación o se rechaza el carrito entero con el detalle por línea (422).
// Una inconsistencia crítica (stock descontado sin registro) responde 500 con
// código CRITICAL_INCONSISTENCY y los items afectados.
func (h *SaleHandler) ProcessSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := sales.SaleInput{
		Section:       GetSection(c),
		PaymentMethod: in.PaymentMethod,
		OperatorID:    GetCallerID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, sales.CartLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	if in.Customer != nil {
		input.Customer = &sales.CustomerInfo{Name: in.Customer.Name, Phone: in.Customer.Phone}
	}

	result, err := h.uc.ProcessSale(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		Transaction:     dto.TransactionToResponse(result.Transaction),
		AdjustedItemIDs: result.AdjustedItemIDs,
	})
}

// GetTransaction consulta una transacción del libro de ventas.
func (h *SaleHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.uc.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TransactionToResponse(txn))
}

// ListTransactions lista el libro de ventas de la sección del caller.
func (h *SaleHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	txns, err := h.uc.ListTransactions(c.Context(), GetSection(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, dto.TransactionToResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}
