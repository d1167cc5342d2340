package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock. Status es función pura de la cantidad: se recalcula en cada
// mutación vía StatusFor y nunca se asigna de forma independiente.
const (
	StatusInStock    = "IN_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"
)

// Roles de los callers. El retailer solo ve sus propios items; el admin ve
// todos los items de su sección.
const (
	RoleAdmin    = "admin"
	RoleRetailer = "retailer"
)

// StockItem representa un item del inventario dentro de una sección
// (centro de distribución, red hospitalaria, organización de ayuda).
type StockItem struct {
	ID          string
	Section     string
	OwnerID     string
	Name        string
	Category    string
	Quantity    int64
	Unit        string
	Price       decimal.Decimal
	Status      string
	MinQuantity int64
	BatchNumber string
	ExpiryDate  *time.Time
	LastUpdated time.Time
}

// StatusFor deriva el estado a partir de la cantidad y el umbral mínimo.
// 0 → OUT_OF_STOCK; por debajo del umbral → LOW_STOCK; si no → IN_STOCK.
func StatusFor(quantity, minQuantity int64) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < minQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
