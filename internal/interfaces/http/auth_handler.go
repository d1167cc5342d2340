package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/auth"
	"github.com/jcastano/cadena-api/internal/application/dto"
	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// AuthHandler crea y revoca sesiones. La identidad upstream está fuera de este
// servicio: solo un caller que presente la clave de servicio puede crear sesiones.
type AuthHandler struct {
	uc         *auth.UseCase
	serviceKey string
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, serviceKey string) *AuthHandler {
	return &AuthHandler{uc: uc, serviceKey: serviceKey}
}

// CreateSession emite un token para el caller indicado. Requiere el header
// X-Service-Key con la clave configurada.
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	if h.serviceKey == "" ||
		subtle.ConstantTimeCompare([]byte(c.Get("X-Service-Key")), []byte(h.serviceKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "clave de servicio inválida"})
	}
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleRetailer {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role debe ser admin o retailer"})
	}
	token, err := h.uc.StartSession(c.Context(), in.CallerID, in.Role, in.Section)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{Token: token})
}

// EndSession revoca la sesión del caller autenticado (logout).
func (h *AuthHandler) EndSession(c *fiber.Ctx) error {
	if err := h.uc.EndSession(c.Context(), GetCallerID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "sesión revocada"})
}
