package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	domaininv "github.com/jcastano/cadena-api/internal/domain/inventory"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

// OrderUseCase ciclo de vida de órdenes de compra: creación (con cantidad
// sugerida de reposición), consulta y cancelación.
type OrderUseCase struct {
	orders     repository.OrderRepository
	items      repository.ItemRepository
	recorder   *activity.Recorder
	defaultMin int64
}

// NewOrderUseCase construye el caso de uso de órdenes.
func NewOrderUseCase(
	orders repository.OrderRepository,
	items repository.ItemRepository,
	recorder *activity.Recorder,
	defaultMin int64,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, items: items, recorder: recorder, defaultMin: defaultMin}
}

// OrderLineInput línea solicitada. Quantity en 0 pide al sistema calcular la
// cantidad sugerida de reposición a partir del stock actual del item.
type OrderLineInput struct {
	ItemID   string
	Quantity int64
}

// CreateOrderInput entrada de Create.
type CreateOrderInput struct {
	Section   string
	Lines     []OrderLineInput
	CreatedBy string
	Notes     string
}

// Create arma la orden en estado PENDING, congelando por línea el snapshot del
// stock actual, la unidad y el precio del item al momento de crearla.
func (uc *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if in.Section == "" || len(in.Lines) == 0 || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	lines := make([]entity.PurchaseOrderItem, 0, len(in.Lines))
	for _, l := range in.Lines {
		item, err := uc.items.Get(ctx, l.ItemID, in.Section)
		if err != nil {
			return nil, err
		}
		qty := l.Quantity
		if qty <= 0 {
			qty = domaininv.SuggestedOrderQuantity(item.Quantity, item.MinQuantity, uc.defaultMin)
		}
		if qty <= 0 {
			// Nada que pedir para este item (stock por encima del doble del mínimo).
			continue
		}
		lines = append(lines, entity.PurchaseOrderItem{
			ItemID:            item.ID,
			Section:           item.Section,
			RequestedQuantity: qty,
			CurrentStock:      item.Quantity,
			Unit:              item.Unit,
			Price:             item.Price,
		})
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		PONumber:    newPONumber(now),
		DateCreated: now,
		Status:      entity.OrderStatusPending,
		Items:       lines,
		Section:     in.Section,
		CreatedBy:   in.CreatedBy,
		Notes:       in.Notes,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.recorder.Log(ctx, in.CreatedBy, "creó orden de compra", order.PONumber,
		entity.ActivityKindOrder, in.Section)
	return order, nil
}

// Get consulta una orden por id.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return uc.orders.GetByID(ctx, id)
}

// List lista las órdenes de una sección.
func (uc *OrderUseCase) List(ctx context.Context, section string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orders.ListBySection(ctx, section, limit, offset)
}

// Cancel pasa la orden de PENDING a CANCELLED. Cualquier otro estado origen
// es un conflicto (RECEIVED y CANCELLED son terminales).
func (uc *OrderUseCase) Cancel(ctx context.Context, actorID, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, domain.ErrConflict
	}
	if err := uc.orders.UpdateStatus(ctx, id, entity.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled
	uc.recorder.Log(ctx, actorID, "canceló orden de compra", order.PONumber,
		entity.ActivityKindOrder, order.Section)
	return order, nil
}

// newPONumber genera un número de orden único: PO-<unix>-<fragmento uuid>.
func newPONumber(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("PO-%d-%s", now.Unix(), frag)
}
