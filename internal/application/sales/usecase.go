package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
	"github.com/jcastano/cadena-api/pkg/logger"
)

// CartLine una línea del carrito de venta.
type CartLine struct {
	ItemID   string
	Quantity int64
}

// CustomerInfo datos opcionales del cliente.
type CustomerInfo struct {
	Name  string
	Phone string
}

// SaleInput entrada de ProcessSale.
type SaleInput struct {
	Lines         []CartLine
	Section       string
	PaymentMethod string
	Customer      *CustomerInfo
	OperatorID    string
}

// SaleResult transacción creada más los items cuyo stock cambió
// (para invalidación de caché en los clientes).
type SaleResult struct {
	Transaction     *entity.Transaction
	AdjustedItemIDs []string
}

// SaleUseCase procesa ventas de punto de venta: valida el carrito completo,
// calcula totales, descuenta stock vía StockLedger y escribe la transacción
// inmutable en el libro de ventas.
type SaleUseCase struct {
	items    repository.ItemRepository
	txns     repository.TransactionRepository
	ledger   *inventory.StockLedger
	recorder *activity.Recorder
	taxRate  decimal.Decimal
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso. taxRate es la tasa fija de impuesto (ej. 0.18).
func NewSaleUseCase(
	items repository.ItemRepository,
	txns repository.TransactionRepository,
	ledger *inventory.StockLedger,
	recorder *activity.Recorder,
	taxRate decimal.Decimal,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		items:    items,
		txns:     txns,
		ledger:   ledger,
		recorder: recorder,
		taxRate:  taxRate,
		log:      log,
	}
}

// ProcessSale ejecuta el pipeline de venta en orden estricto:
//
//  1. Pasada de validación (sin mutación): toda línea inválida se acumula y,
//     si hay alguna, se aborta con un ValidationError que lista todas las
//     razones de una vez — nunca se aceptan ventas parciales.
//  2. Precios: subtotal = cantidad × precio unitario; tax = subtotal × tasa;
//     total = suma de (subtotal + tax) redondeada a 2 decimales.
//  3. Pasada de deducción: StockLedger.Adjust por línea. Se relee la cantidad
//     actual en lugar de confiar en el snapshot de la validación, así que una
//     línea puede fallar aquí si el stock cambió entre pasadas. Esa ventana no
//     está protegida por ningún lock: es una carrera conocida y aceptada.
//  4. Escritura del libro: si falla después de deducir, NO se revierte el
//     stock; se reporta InconsistencyError con los items afectados y se deja
//     la reconciliación a un operador.
func (uc *SaleUseCase) ProcessSale(ctx context.Context, in SaleInput) (*SaleResult, error) {
	if len(in.Lines) == 0 || in.Section == "" || in.OperatorID == "" {
		return nil, domain.ErrInvalidInput
	}

	// 1) Validación: buscar cada item y acumular todos los rechazos.
	var failures []domain.LineFailure
	itemsByID := make(map[string]*entity.StockItem, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			failures = append(failures, domain.LineFailure{ItemID: line.ItemID, Reason: "cantidad inválida"})
			continue
		}
		item, err := uc.items.Get(ctx, line.ItemID, in.Section)
		if err != nil {
			failures = append(failures, domain.LineFailure{ItemID: line.ItemID, Reason: "item no encontrado"})
			continue
		}
		if line.Quantity > item.Quantity {
			failures = append(failures, domain.LineFailure{
				ItemID: line.ItemID,
				Reason: fmt.Sprintf("stock insuficiente (disponible %d, pedido %d)", item.Quantity, line.Quantity),
			})
			continue
		}
		itemsByID[line.ItemID] = item
	}
	if len(failures) > 0 {
		return nil, &domain.ValidationError{Lines: failures}
	}

	// 2) Precios y totales.
	now := time.Now()
	txnItems := make([]entity.TransactionItem, 0, len(in.Lines))
	total := decimal.Zero
	for _, line := range in.Lines {
		item := itemsByID[line.ItemID]
		subtotal := item.Price.Mul(decimal.NewFromInt(line.Quantity))
		tax := subtotal.Mul(uc.taxRate).Round(2)
		total = total.Add(subtotal.Add(tax))
		txnItems = append(txnItems, entity.TransactionItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
			Tax:       tax,
			Subtotal:  subtotal,
		})
	}
	total = total.Round(2)

	// 3) Deducción: una por línea, releyendo el stock actual. Si una línea
	// falla aquí, el error del ledger sube tal cual (NotFound / InsufficientStock).
	adjusted := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		item, err := uc.ledger.Adjust(ctx, line.ItemID, in.Section, -line.Quantity)
		if err != nil {
			return nil, err
		}
		adjusted = append(adjusted, item.ID)
		uc.recorder.Log(ctx, in.OperatorID, "vendió",
			fmt.Sprintf("%d %s de %s", line.Quantity, item.Unit, item.Name),
			entity.ActivityKindSale, in.Section)
	}

	// 4) Registro inmutable en el libro de ventas.
	txn := &entity.Transaction{
		ID:            uuid.New().String(),
		InvoiceNumber: newInvoiceNumber(now),
		Date:          now,
		Type:          entity.TxTypeSale,
		Items:         txnItems,
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		Section:       in.Section,
		PerformedBy:   in.OperatorID,
	}
	if in.Customer != nil {
		txn.CustomerName = in.Customer.Name
		txn.CustomerPhone = in.Customer.Phone
	}
	if err := uc.txns.Create(ctx, txn); err != nil {
		// Stock ya descontado y sin registro: no hay rollback posible.
		// Se marca con la máxima severidad para revisión del operador.
		uc.log.Error().Err(err).
			Str("invoice", txn.InvoiceNumber).
			Str("section", in.Section).
			Str("operator", in.OperatorID).
			Strs("items", adjusted).
			Msg("INCONSISTENCIA CRÍTICA: stock descontado pero el libro de ventas no se escribió")
		return nil, &domain.InconsistencyError{
			InvoiceNumber: txn.InvoiceNumber,
			ItemIDs:       adjusted,
			Cause:         err,
		}
	}

	uc.recorder.Log(ctx, in.OperatorID, "completó venta", txn.InvoiceNumber,
		entity.ActivityKindSale, in.Section)

	return &SaleResult{Transaction: txn, AdjustedItemIDs: adjusted}, nil
}

// GetTransaction consulta una transacción del libro por id.
func (uc *SaleUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	return uc.txns.GetByID(ctx, id)
}

// ListTransactions lista el libro de ventas de una sección.
func (uc *SaleUseCase) ListTransactions(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.txns.ListBySection(ctx, section, limit, offset)
}

// newInvoiceNumber genera un número de factura único: INV-<unix>-<fragmento uuid>.
func newInvoiceNumber(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", now.Unix(), frag)
}
