package procurement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/application/procurement"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/pkg/logger"
)

func newReceiveUseCase(orders *fakeOrders, items *fakeItems) *procurement.ReceiveUseCase {
	ledger := inventory.NewStockLedger(items, 20)
	return procurement.NewReceiveUseCase(orders, ledger, newRecorder(), logger.Nop())
}

func pendingOrder(id string, lines ...entity.PurchaseOrderItem) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:       id,
		PONumber: "PO-1",
		Status:   entity.OrderStatusPending,
		Section:  "Hospital",
		Items:    lines,
	}
}

func line(itemID string, qty int64) entity.PurchaseOrderItem {
	return entity.PurchaseOrderItem{ItemID: itemID, Section: "Hospital", RequestedQuantity: qty, Unit: "caja"}
}

// Todas las líneas incrementan stock y la orden avanza a RECEIVED.
func TestReceive_TodoExitoso(t *testing.T) {
	items := newFakeItems(
		&entity.StockItem{ID: "a", Section: "Hospital", Quantity: 2, Name: "A"},
		&entity.StockItem{ID: "b", Section: "Hospital", Quantity: 0, Name: "B"},
	)
	orders := newFakeOrders(pendingOrder("o1", line("a", 10), line("b", 30)))
	uc := newReceiveUseCase(orders, items)

	res, err := uc.Receive(context.Background(), "admin-1", "o1")
	require.NoError(t, err)

	assert.Empty(t, res.Failed)
	assert.Equal(t, []string{"a", "b"}, res.AdjustedItemIDs)
	assert.Equal(t, int64(12), items.quantity("a", "Hospital"))
	assert.Equal(t, int64(30), items.quantity("b", "Hospital"))

	stored, err := orders.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, stored.Status)
}

// Best-effort: la línea fallida no detiene a las demás, pero el estado NO
// avanza — la orden queda en PENDING con las líneas fallidas para reintento.
func TestReceive_ParcialMantienePending(t *testing.T) {
	items := newFakeItems(
		&entity.StockItem{ID: "a", Section: "Hospital", Quantity: 2, Name: "A"},
		&entity.StockItem{ID: "c", Section: "Hospital", Quantity: 1, Name: "C"},
	)
	// "b" no existe en el inventario: esa línea falla.
	orders := newFakeOrders(pendingOrder("o1", line("a", 10), line("b", 5), line("c", 3)))
	uc := newReceiveUseCase(orders, items)

	res, err := uc.Receive(context.Background(), "admin-1", "o1")
	require.NoError(t, err, "la recepción parcial no es un error de la operación")

	require.Len(t, res.Failed, 1)
	assert.Equal(t, "b", res.Failed[0].ItemID)
	assert.Equal(t, []string{"a", "c"}, res.AdjustedItemIDs)

	// Las líneas buenas sí incrementaron stock.
	assert.Equal(t, int64(12), items.quantity("a", "Hospital"))
	assert.Equal(t, int64(4), items.quantity("c", "Hospital"))

	stored, err := orders.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, stored.Status, "con fallos la orden no avanza de estado")
}

// Recibir una orden que no está en PENDING es un conflicto y no toca stock.
func TestReceive_OrdenNoPendiente(t *testing.T) {
	for _, status := range []string{entity.OrderStatusReceived, entity.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			items := newFakeItems(&entity.StockItem{ID: "a", Section: "Hospital", Quantity: 2})
			order := pendingOrder("o1", line("a", 10))
			order.Status = status
			uc := newReceiveUseCase(newFakeOrders(order), items)

			_, err := uc.Receive(context.Background(), "admin-1", "o1")
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, int64(2), items.quantity("a", "Hospital"))
		})
	}
}

func TestReceive_OrdenInexistente(t *testing.T) {
	uc := newReceiveUseCase(newFakeOrders(), newFakeItems())
	_, err := uc.Receive(context.Background(), "admin-1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
