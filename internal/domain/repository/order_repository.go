package repository

import (
	"context"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes de compra.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID retorna domain.ErrNotFound si la orden no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
