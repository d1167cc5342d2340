package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// CreateItemRequest alta de un item de inventario.
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity int64           `json:"min_quantity"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	OwnerID     string          `json:"owner_id"`
}

// ItemResponse representación HTTP de un StockItem.
type ItemResponse struct {
	ID          string          `json:"id"`
	Section     string          `json:"section"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	MinQuantity int64           `json:"min_quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}

// ItemToResponse mapea la entidad al DTO.
func ItemToResponse(it *entity.StockItem) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Section:     it.Section,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Category:    it.Category,
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		Price:       it.Price,
		Status:      it.Status,
		MinQuantity: it.MinQuantity,
		BatchNumber: it.BatchNumber,
		ExpiryDate:  it.ExpiryDate,
		LastUpdated: it.LastUpdated,
	}
}

// ScanResponse resultado del escaneo acumulado de inventario.
type ScanResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
	// Partial indica que el escaneo terminó con error y los items son lo
	// acumulado hasta ese punto.
	Partial bool   `json:"partial,omitempty"`
	Error   string `json:"error,omitempty"`
}
