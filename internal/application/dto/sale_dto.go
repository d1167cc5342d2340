package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// SaleLineRequest una línea del carrito.
type SaleLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// SaleCustomerRequest datos opcionales del cliente.
type SaleCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SaleRequest procesamiento de una venta.
type SaleRequest struct {
	Lines         []SaleLineRequest    `json:"lines"`
	PaymentMethod string               `json:"payment_method"`
	Customer      *SaleCustomerRequest `json:"customer"`
}

// TransactionItemResponse línea de una transacción.
type TransactionItemResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// TransactionResponse transacción del libro de ventas.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	InvoiceNumber string                    `json:"invoice_number"`
	Date          time.Time                 `json:"date"`
	Type          string                    `json:"type"`
	Items         []TransactionItemResponse `json:"items"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	PaymentMethod string                    `json:"payment_method"`
	Section       string                    `json:"section"`
	PerformedBy   string                    `json:"performed_by"`
	CustomerName  string                    `json:"customer_name,omitempty"`
}

// SaleResponse venta completada: transacción más los items cuyo stock cambió.
type SaleResponse struct {
	Transaction     TransactionResponse `json:"transaction"`
	AdjustedItemIDs []string            `json:"adjusted_item_ids"`
}

// TransactionToResponse mapea la entidad al DTO.
func TransactionToResponse(t *entity.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TransactionItemResponse{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Tax:       it.Tax,
			Subtotal:  it.Subtotal,
		})
	}
	return TransactionResponse{
		ID:            t.ID,
		InvoiceNumber: t.InvoiceNumber,
		Date:          t.Date,
		Type:          t.Type,
		Items:         items,
		TotalAmount:   t.TotalAmount,
		PaymentMethod: t.PaymentMethod,
		Section:       t.Section,
		PerformedBy:   t.PerformedBy,
		CustomerName:  t.CustomerName,
	}
}
