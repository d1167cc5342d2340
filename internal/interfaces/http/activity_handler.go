package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/dto"
)

// ActivityHandler expone el registro de actividad de la sección (protegido).
type ActivityHandler struct {
	recorder *activity.Recorder
}

// NewActivityHandler construye el handler.
func NewActivityHandler(recorder *activity.Recorder) *ActivityHandler {
	return &ActivityHandler{recorder: recorder}
}

// List lista la actividad de la sección del caller.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	entries, err := h.recorder.List(c.Context(), GetSection(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, fiber.Map{
			"id":         e.ID,
			"actor_id":   e.ActorID,
			"verb":       e.Verb,
			"target":     e.Target,
			"kind":       e.Kind,
			"section":    e.Section,
			"created_at": e.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "activity": out})
}
