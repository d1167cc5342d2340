package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/auth"
	"github.com/jcastano/cadena-api/internal/application/dto"
)

// Locals keys para la identidad del caller en Fiber.
const (
	LocalCallerID = "caller_id"
	LocalRole     = "role"
	LocalSection  = "section"
)

// callerResolver es el contrato mínimo que necesita el middleware para
// resolver el token de sesión. Lo implementa *auth.UseCase; la interfaz
// permite stubs en tests.
type callerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*auth.Caller, error)
}

// AuthMiddleware valida el Bearer Token, resuelve la sesión y carga
// caller_id, role y section en c.Locals.
func AuthMiddleware(resolver callerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		caller, err := resolver.ResolveCaller(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o sesión revocada"})
		}
		c.Locals(LocalCallerID, caller.ID)
		c.Locals(LocalRole, caller.Role)
		c.Locals(LocalSection, caller.Section)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Usar DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no presente en la sesión"})
		}
		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetCallerID devuelve el id del caller del contexto (después del middleware de auth).
func GetCallerID(c *fiber.Ctx) string { return localString(c, LocalCallerID) }

// GetRole devuelve el rol del caller.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetSection devuelve la sección del caller.
func GetSection(c *fiber.Ctx) string { return localString(c, LocalSection) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
