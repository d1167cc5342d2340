package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Transiciones válidas: PENDING → RECEIVED | CANCELLED.
// RECEIVED es terminal y solo se alcanza cuando todas las líneas incrementaron stock.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrderItem una línea de la orden: cantidad pedida y snapshot del stock
// al momento de crear la orden (solo informativo, no se usa al recibir).
type PurchaseOrderItem struct {
	ItemID            string          `json:"item_id"`
	Section           string          `json:"section"`
	RequestedQuantity int64           `json:"requested_quantity"`
	CurrentStock      int64           `json:"current_stock"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
}

// PurchaseOrder representa una orden de compra a proveedor.
type PurchaseOrder struct {
	ID          string
	PONumber    string
	DateCreated time.Time
	Status      string
	Items       []PurchaseOrderItem
	Section     string
	CreatedBy   string
	Notes       string
}

// CanTransitionTo valida la máquina de estados de la orden.
func (o *PurchaseOrder) CanTransitionTo(status string) bool {
	if o.Status != OrderStatusPending {
		return false
	}
	return status == OrderStatusReceived || status == OrderStatusCancelled
}
