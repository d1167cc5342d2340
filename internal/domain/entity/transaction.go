package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de ventas.
const (
	TxTypeSale          = "SALE"
	TxTypeInternalUsage = "INTERNAL_USAGE"
	TxTypeDamage        = "DAMAGE"
	TxTypeExpiry        = "EXPIRY"
)

// TransactionItem una línea de la transacción, con precios congelados al momento de la venta.
type TransactionItem struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Transaction es el registro inmutable de una venta completada.
// TotalAmount = suma de (subtotal + tax) de todas las líneas, redondeado a 2 decimales.
// Nunca se crea para una venta cuya validación de stock falló.
type Transaction struct {
	ID            string
	InvoiceNumber string
	Date          time.Time
	Type          string
	Items         []TransactionItem
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Section       string
	PerformedBy   string
	CustomerName  string
	CustomerPhone string
}
