package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/application/sales"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
	"github.com/jcastano/cadena-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItems struct {
	mu      sync.Mutex
	byKey   map[string]*entity.StockItem
	getSeen map[string]int
	onGet   func(itemID string, nthCall int)
}

func newFakeItems(items ...*entity.StockItem) *fakeItems {
	f := &fakeItems{byKey: make(map[string]*entity.StockItem), getSeen: make(map[string]int)}
	for _, it := range items {
		f.byKey[it.ID+"/"+it.Section] = it
	}
	return f
}

func (f *fakeItems) Create(ctx context.Context, item *entity.StockItem) error { return nil }

func (f *fakeItems) Get(ctx context.Context, itemID, section string) (*entity.StockItem, error) {
	f.mu.Lock()
	f.getSeen[itemID]++
	nth := f.getSeen[itemID]
	f.mu.Unlock()
	if f.onGet != nil {
		f.onGet(itemID, nth)
	}
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
	it.LastUpdated = updatedAt
	cp := *it
	return &cp, nil
}

func (f *fakeItems) Delete(ctx context.Context, itemID, section string) error { return nil }

func (f *fakeItems) ListPage(ctx context.Context, section string, pageSize int, token string) (*repository.ItemPage, error) {
	return &repository.ItemPage{}, nil
}

func (f *fakeItems) setQuantity(itemID, section string, q int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byKey[itemID+"/"+section].Quantity = q
}

func (f *fakeItems) quantity(itemID, section string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[itemID+"/"+section].Quantity
}

type fakeTxns struct {
	mu      sync.Mutex
	created []*entity.Transaction
	failing bool
}

func (f *fakeTxns) Create(ctx context.Context, txn *entity.Transaction) error {
	if f.failing {
		return errors.New("el libro de ventas no respondió")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, txn)
	return nil
}

func (f *fakeTxns) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.created {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTxns) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, nil
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

func newSaleUseCase(items *fakeItems, txns *fakeTxns, acts *fakeActivity) *sales.SaleUseCase {
	log := logger.Nop()
	ledger := inventory.NewStockLedger(items, 20)
	recorder := activity.NewRecorder(acts, log)
	taxRate := decimal.RequireFromString("0.18")
	return sales.NewSaleUseCase(items, txns, ledger, recorder, taxRate, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Venta de 3 unidades a 10.00 con tasa 0.18: subtotal 30.00, impuesto 5.40,
// total 35.40, y el stock termina en 2 con estado recalculado.
func TestProcessSale_PipelineCompleto(t *testing.T) {
	items := newFakeItems(&entity.StockItem{
		ID: "X1", Section: "Hospital", Name: "Guantes", Unit: "caja",
		Quantity: 5, Price: decimal.RequireFromString("10.00"),
	})
	txns := &fakeTxns{}
	acts := &fakeActivity{}
	uc := newSaleUseCase(items, txns, acts)

	res, err := uc.ProcessSale(context.Background(), sales.SaleInput{
		Lines:         []sales.CartLine{{ItemID: "X1", Quantity: 3}},
		Section:       "Hospital",
		PaymentMethod: "efectivo",
		Customer:      &sales.CustomerInfo{Name: "Ana", Phone: "555"},
		OperatorID:    "op-1",
	})
	require.NoError(t, err)

	txn := res.Transaction
	assert.Equal(t, "35.40", txn.TotalAmount.StringFixed(2))
	require.Len(t, txn.Items, 1)
	assert.Equal(t, "30.00", txn.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "5.40", txn.Items[0].Tax.StringFixed(2))
	assert.Equal(t, entity.TxTypeSale, txn.Type)
	assert.Contains(t, txn.InvoiceNumber, "INV-")
	assert.Equal(t, "Ana", txn.CustomerName)

	assert.Equal(t, []string{"X1"}, res.AdjustedItemIDs)
	assert.Equal(t, int64(2), items.quantity("X1", "Hospital"))

	require.Len(t, txns.created, 1, "la transacción debe quedar en el libro")
	assert.Len(t, acts.entries, 2, "una entrada por línea más el resumen de la venta")
}

// Toda línea inválida se reporta junta y ninguna venta parcial muta stock.
func TestProcessSale_ValidacionTodoONada(t *testing.T) {
	items := newFakeItems(&entity.StockItem{
		ID: "X1", Section: "Hospital", Quantity: 5, Price: decimal.RequireFromString("10.00"),
	})
	txns := &fakeTxns{}
	uc := newSaleUseCase(items, txns, &fakeActivity{})

	_, err := uc.ProcessSale(context.Background(), sales.SaleInput{
		Lines: []sales.CartLine{
			{ItemID: "X1", Quantity: 2},   // válida
			{ItemID: "X1", Quantity: 99},  // stock insuficiente
			{ItemID: "nope", Quantity: 1}, // no existe
			{ItemID: "X1", Quantity: 0},   // cantidad inválida
		},
		Section:    "Hospital",
		OperatorID: "op-1",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Lines, 3, "todas las razones de rechazo deben llegar juntas")

	assert.Equal(t, int64(5), items.quantity("X1", "Hospital"), "una venta rechazada no muta stock")
	assert.Empty(t, txns.created)
}

// Si el libro de ventas falla después de deducir, el stock NO se revierte y el
// error identifica la venta y los items afectados para reconciliación manual.
func TestProcessSale_InconsistenciaCritica(t *testing.T) {
	items := newFakeItems(&entity.StockItem{
		ID: "X1", Section: "Hospital", Quantity: 5, Price: decimal.RequireFromString("10.00"),
	})
	txns := &fakeTxns{failing: true}
	uc := newSaleUseCase(items, txns, &fakeActivity{})

	_, err := uc.ProcessSale(context.Background(), sales.SaleInput{
		Lines:      []sales.CartLine{{ItemID: "X1", Quantity: 3}},
		Section:    "Hospital",
		OperatorID: "op-1",
	})

	var ierr *domain.InconsistencyError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, []string{"X1"}, ierr.ItemIDs)
	assert.NotEmpty(t, ierr.InvoiceNumber)

	assert.Equal(t, int64(2), items.quantity("X1", "Hospital"),
		"sin rollback: el stock queda descontado aunque el libro no se escribió")
}

// El stock puede cambiar entre la validación y la deducción (no hay lock).
// La deducción relee y el fallo del ledger sube tal cual.
func TestProcessSale_CarreraEntrePasadas(t *testing.T) {
	items := newFakeItems(&entity.StockItem{
		ID: "X1", Section: "Hospital", Quantity: 5, Price: decimal.RequireFromString("10.00"),
	})
	// Segundo Get (la relectura del ledger): otro proceso ya se llevó el stock.
	items.onGet = func(itemID string, nth int) {
		if nth == 2 {
			items.setQuantity("X1", "Hospital", 1)
		}
	}
	txns := &fakeTxns{}
	uc := newSaleUseCase(items, txns, &fakeActivity{})

	_, err := uc.ProcessSale(context.Background(), sales.SaleInput{
		Lines:      []sales.CartLine{{ItemID: "X1", Quantity: 3}},
		Section:    "Hospital",
		OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, txns.created)
}

func TestProcessSale_EntradaInvalida(t *testing.T) {
	uc := newSaleUseCase(newFakeItems(), &fakeTxns{}, &fakeActivity{})

	_, err := uc.ProcessSale(context.Background(), sales.SaleInput{
		Section: "Hospital", OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
