package inventory

import (
	"context"
	"time"

	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

// StockLedger es el único camino por el que cambia la cantidad de un item.
// SaleProcessor y el reconciliador de órdenes lo invocan exclusivamente;
// nunca escriben cantidad directo al store.
//
// El store no ofrece token de concurrencia optimista: el read-modify-write es
// last-write-wins a propósito. No agregar locking aquí — cambiaría el
// comportamiento observable bajo contención.
type StockLedger struct {
	items      repository.ItemRepository
	defaultMin int64
}

// NewStockLedger construye el ledger. defaultMin aplica cuando el item no define MinQuantity.
func NewStockLedger(items repository.ItemRepository, defaultMin int64) *StockLedger {
	return &StockLedger{items: items, defaultMin: defaultMin}
}

// Adjust lee el item, aplica el delta y persiste cantidad y estado derivado.
// Retorna domain.ErrNotFound si el item no existe y domain.ErrInsufficientStock
// si la nueva cantidad sería negativa.
func (l *StockLedger) Adjust(ctx context.Context, itemID, section string, delta int64) (*entity.StockItem, error) {
	item, err := l.items.Get(ctx, itemID, section)
	if err != nil {
		return nil, err
	}

	newQty := item.Quantity + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}

	min := item.MinQuantity
	if min <= 0 {
		min = l.defaultMin
	}
	status := entity.StatusFor(newQty, min)

	return l.items.UpdateQuantity(ctx, itemID, section, newQty, status, time.Now())
}
