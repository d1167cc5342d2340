package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// OrderLineRequest línea de una orden de compra. Quantity en 0 deja que el
// sistema calcule la cantidad sugerida de reposición.
type OrderLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateOrderRequest creación de orden de compra.
type CreateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
	Notes string             `json:"notes"`
}

// OrderItemResponse línea de la orden.
type OrderItemResponse struct {
	ItemID            string          `json:"item_id"`
	Section           string          `json:"section"`
	RequestedQuantity int64           `json:"requested_quantity"`
	CurrentStock      int64           `json:"current_stock"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
}

// OrderResponse orden de compra.
type OrderResponse struct {
	ID          string              `json:"id"`
	PONumber    string              `json:"po_number"`
	DateCreated time.Time           `json:"date_created"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	Section     string              `json:"section"`
	CreatedBy   string              `json:"created_by"`
	Notes       string              `json:"notes,omitempty"`
}

// ReceiveResponse resultado de la recepción best-effort.
type ReceiveResponse struct {
	Order           OrderResponse        `json:"order"`
	Failed          []domain.LineFailure `json:"failed,omitempty"`
	AdjustedItemIDs []string             `json:"adjusted_item_ids,omitempty"`
}

// OrderToResponse mapea la entidad al DTO.
func OrderToResponse(o *entity.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ItemID:            it.ItemID,
			Section:           it.Section,
			RequestedQuantity: it.RequestedQuantity,
			CurrentStock:      it.CurrentStock,
			Unit:              it.Unit,
			Price:             it.Price,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		PONumber:    o.PONumber,
		DateCreated: o.DateCreated,
		Status:      o.Status,
		Items:       items,
		Section:     o.Section,
		CreatedBy:   o.CreatedBy,
		Notes:       o.Notes,
	}
}
