package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/cadena-api/internal/application/dto"
	"github.com/jcastano/cadena-api/internal/domain"
)

func responderApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return domainError(c, err)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return resp.StatusCode, er
}

func TestDomainError_Sentinelas(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("algo inesperado"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			status, body := doRequest(t, responderApp(tc.err))
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

// El rechazo de una venta lista todas las líneas fallidas en el detalle.
func TestDomainError_Validacion(t *testing.T) {
	err := &domain.ValidationError{Lines: []domain.LineFailure{
		{ItemID: "X1", Reason: "stock insuficiente (disponible 5, pedido 9)"},
		{ItemID: "X2", Reason: "item no encontrado"},
	}}

	status, body := doRequest(t, responderApp(err))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)

	detail, err2 := json.Marshal(body.Details)
	require.NoError(t, err2)
	assert.Contains(t, string(detail), "X1")
	assert.Contains(t, string(detail), "X2")
}

// La inconsistencia crítica expone factura e items para reconciliación manual.
func TestDomainError_InconsistenciaCritica(t *testing.T) {
	err := &domain.InconsistencyError{
		InvoiceNumber: "INV-1",
		ItemIDs:       []string{"X1", "X2"},
		Cause:         errors.New("db caída"),
	}

	status, body := doRequest(t, responderApp(err))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "CRITICAL_INCONSISTENCY", body.Code)

	detail, err2 := json.Marshal(body.Details)
	require.NoError(t, err2)
	assert.Contains(t, string(detail), "INV-1")
	assert.Contains(t, string(detail), "X1")
}
