package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// LineFailure describe el rechazo de una línea individual (carrito u orden de compra).
type LineFailure struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// ValidationError agrupa todas las líneas rechazadas de una venta en un solo error.
// Nunca se reporta línea por línea: el caller recibe el listado completo de una vez.
type ValidationError struct {
	Lines []LineFailure
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		reasons = append(reasons, fmt.Sprintf("%s: %s", l.ItemID, l.Reason))
	}
	return "validación de venta fallida: " + strings.Join(reasons, "; ")
}

// InconsistencyError indica que el stock ya fue descontado pero el registro de la
// transacción no pudo escribirse. No existe mecanismo de rollback: requiere
// reconciliación manual de un operador, nunca un reintento silencioso.
type InconsistencyError struct {
	InvoiceNumber string
	ItemIDs       []string
	Cause         error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf(
		"inconsistencia crítica: stock descontado sin registro de transacción (factura %s, items %s): %v",
		e.InvoiceNumber, strings.Join(e.ItemIDs, ","), e.Cause,
	)
}

func (e *InconsistencyError) Unwrap() error { return e.Cause }
