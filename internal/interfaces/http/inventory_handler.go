package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/dto"
	"github.com/jcastano/cadena-api/internal/application/inventory"
)

// InventoryHandler maneja el escaneo de inventario y el ciclo de vida de items (protegido).
type InventoryHandler struct {
	scan  *inventory.ScanUseCase
	items *inventory.ItemUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(scan *inventory.ScanUseCase, items *inventory.ItemUseCase) *InventoryHandler {
	return &InventoryHandler{scan: scan, items: items}
}

// Scan acumula el inventario visible completo de la sección del caller.
// page_size controla el tamaño de página contra el store (default 50).
// Si una página falla a mitad del escaneo, responde lo acumulado con partial=true.
func (h *InventoryHandler) Scan(c *fiber.Ctx) error {
	section := GetSection(c)
	callerID := GetCallerID(c)
	role := GetRole(c)
	if section == "" || callerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida"})
	}

	pageSize := c.QueryInt("page_size", 50)

	items, err := h.scan.Scan(c.Context(), section, callerID, role, pageSize)
	if err != nil && len(items) == 0 {
		return domainError(c, err)
	}

	resp := dto.ScanResponse{Items: make([]dto.ItemResponse, 0, len(items)), Total: len(items)}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.ItemToResponse(it))
	}
	if err != nil {
		resp.Partial = true
		resp.Error = err.Error()
	}
	return c.JSON(resp)
}

// CreateItem da de alta un item en la sección del caller.
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = GetCallerID(c)
	}
	item, err := h.items.Create(c.Context(), GetCallerID(c), inventory.CreateItemInput{
		Section:     GetSection(c),
		OwnerID:     ownerID,
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Price:       in.Price,
		MinQuantity: in.MinQuantity,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemToResponse(item))
}

// GetItem consulta un item de la sección del caller.
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.items.Get(c.Context(), c.Params("id"), GetSection(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ItemToResponse(item))
}

// DeleteItem elimina un item de la sección del caller (nunca cross-section).
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), GetCallerID(c), c.Params("id"), GetSection(c)); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "item eliminado"})
}
