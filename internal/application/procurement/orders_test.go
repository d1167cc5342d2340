package procurement_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/procurement"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
	"github.com/jcastano/cadena-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItems struct {
	mu    sync.Mutex
	byKey map[string]*entity.StockItem
}

func newFakeItems(items ...*entity.StockItem) *fakeItems {
	f := &fakeItems{byKey: make(map[string]*entity.StockItem)}
	for _, it := range items {
		f.byKey[it.ID+"/"+it.Section] = it
	}
	return f
}

func (f *fakeItems) Create(ctx context.Context, item *entity.StockItem) error { return nil }

func (f *fakeItems) Get(ctx context.Context, itemID, section string) (*entity.StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.byKey[itemID+"/"+section]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) UpdateQuantity(ctx context.Context, itemID, section string, quantity int64, status string, updatedAt time.Time) (*entity.StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.byKey[itemID+"/"+section]
	if !ok {
		return nil, domain.ErrNotFound
	}
	it.Quantity = quantity
	it.Status = status
	cp := *it
	return &cp, nil
}

func (f *fakeItems) Delete(ctx context.Context, itemID, section string) error { return nil }

func (f *fakeItems) ListPage(ctx context.Context, section string, pageSize int, token string) (*repository.ItemPage, error) {
	return &repository.ItemPage{}, nil
}

func (f *fakeItems) quantity(itemID, section string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[itemID+"/"+section].Quantity
}

type fakeOrders struct {
	mu     sync.Mutex
	byID   map[string]*entity.PurchaseOrder
	status map[string]string // historial de UpdateStatus por id
}

func newFakeOrders(orders ...*entity.PurchaseOrder) *fakeOrders {
	f := &fakeOrders{byID: make(map[string]*entity.PurchaseOrder), status: make(map[string]string)}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[order.ID] = order
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	f.status[id] = status
	return nil
}

func (f *fakeOrders) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.PurchaseOrder, 0, len(f.byID))
	for _, o := range f.byID {
		if o.Section == section {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []*entity.ActivityEntry
}

func (f *fakeActivity) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivity) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.ActivityEntry, error) {
	return f.entries, nil
}

func newRecorder() *activity.Recorder {
	return activity.NewRecorder(&fakeActivity{}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y cancelación
// ──────────────────────────────────────────────────────────────────────────────

// Cantidad en 0 pide la sugerencia: max(0, 2*min - stock). Con mínimo por
// defecto 20 y stock 5, la sugerencia es 35.
func TestCreate_CantidadSugerida(t *testing.T) {
	items := newFakeItems(
		&entity.StockItem{ID: "bajo", Section: "Hospital", Quantity: 5, Unit: "caja", Price: decimal.RequireFromString("4.50")},
		&entity.StockItem{ID: "lleno", Section: "Hospital", Quantity: 100},
	)
	orders := newFakeOrders()
	uc := procurement.NewOrderUseCase(orders, items, newRecorder(), 20)

	order, err := uc.Create(context.Background(), procurement.CreateOrderInput{
		Section:   "Hospital",
		CreatedBy: "admin-1",
		Lines: []procurement.OrderLineInput{
			{ItemID: "bajo", Quantity: 0},   // calcular sugerencia
			{ItemID: "lleno", Quantity: 0},  // sugerencia 0: la línea se descarta
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Contains(t, order.PONumber, "PO-")
	require.Len(t, order.Items, 1, "los items con stock suficiente no generan línea")
	line := order.Items[0]
	assert.Equal(t, int64(35), line.RequestedQuantity)
	assert.Equal(t, int64(5), line.CurrentStock, "el snapshot de stock se congela al crear")
	assert.Equal(t, "caja", line.Unit)
}

// Cantidad explícita se respeta tal cual, sin recalcular.
func TestCreate_CantidadExplicita(t *testing.T) {
	items := newFakeItems(&entity.StockItem{ID: "x", Section: "S", Quantity: 100})
	uc := procurement.NewOrderUseCase(newFakeOrders(), items, newRecorder(), 20)

	order, err := uc.Create(context.Background(), procurement.CreateOrderInput{
		Section:   "S",
		CreatedBy: "admin-1",
		Lines:     []procurement.OrderLineInput{{ItemID: "x", Quantity: 7}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(7), order.Items[0].RequestedQuantity)
}

// Si toda línea queda descartada no hay nada que ordenar.
func TestCreate_SinLineasUtiles(t *testing.T) {
	items := newFakeItems(&entity.StockItem{ID: "lleno", Section: "S", Quantity: 100})
	uc := procurement.NewOrderUseCase(newFakeOrders(), items, newRecorder(), 20)

	_, err := uc.Create(context.Background(), procurement.CreateOrderInput{
		Section:   "S",
		CreatedBy: "admin-1",
		Lines:     []procurement.OrderLineInput{{ItemID: "lleno", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_Transiciones(t *testing.T) {
	t.Run("PENDING se cancela", func(t *testing.T) {
		orders := newFakeOrders(&entity.PurchaseOrder{ID: "o1", Status: entity.OrderStatusPending, Section: "S"})
		uc := procurement.NewOrderUseCase(orders, newFakeItems(), newRecorder(), 20)

		order, err := uc.Cancel(context.Background(), "admin-1", "o1")
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, order.Status)
	})

	t.Run("RECEIVED es terminal", func(t *testing.T) {
		orders := newFakeOrders(&entity.PurchaseOrder{ID: "o1", Status: entity.OrderStatusReceived, Section: "S"})
		uc := procurement.NewOrderUseCase(orders, newFakeItems(), newRecorder(), 20)

		_, err := uc.Cancel(context.Background(), "admin-1", "o1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("CANCELLED es terminal", func(t *testing.T) {
		orders := newFakeOrders(&entity.PurchaseOrder{ID: "o1", Status: entity.OrderStatusCancelled, Section: "S"})
		uc := procurement.NewOrderUseCase(orders, newFakeItems(), newRecorder(), 20)

		_, err := uc.Cancel(context.Background(), "admin-1", "o1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
