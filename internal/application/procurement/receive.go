package procurement

import (
	"context"
	"fmt"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
	"github.com/jcastano/cadena-api/pkg/logger"
)

// ReceiveResult resultado de la recepción: orden (con estado final), líneas
// fallidas para reintento y los items cuyo stock sí cambió.
type ReceiveResult struct {
	Order           *entity.PurchaseOrder
	Failed          []domain.LineFailure
	AdjustedItemIDs []string
}

// ReceiveUseCase reconcilia la recepción de una orden de compra contra el stock.
//
// Política deliberadamente distinta a la de ventas: la ejecución es best-effort
// (una línea fallida no detiene las demás, porque una recepción parcial de
// mercancía es un resultado operativo normal), pero el estado solo avanza a
// RECEIVED si TODAS las líneas incrementaron stock; si no, la orden permanece
// en su estado previo y las líneas fallidas se devuelven para reintento.
type ReceiveUseCase struct {
	orders   repository.OrderRepository
	ledger   *inventory.StockLedger
	recorder *activity.Recorder
	log      *logger.Logger
}

// NewReceiveUseCase construye el reconciliador de recepción.
func NewReceiveUseCase(
	orders repository.OrderRepository,
	ledger *inventory.StockLedger,
	recorder *activity.Recorder,
	log *logger.Logger,
) *ReceiveUseCase {
	return &ReceiveUseCase{orders: orders, ledger: ledger, recorder: recorder, log: log}
}

// Receive procesa todas las líneas de la orden incrementando stock vía StockLedger.
func (uc *ReceiveUseCase) Receive(ctx context.Context, actorID, orderID string) (*ReceiveResult, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(entity.OrderStatusReceived) {
		return nil, domain.ErrConflict
	}

	result := &ReceiveResult{Order: order}
	for _, line := range order.Items {
		item, err := uc.ledger.Adjust(ctx, line.ItemID, line.Section, line.RequestedQuantity)
		if err != nil {
			// Best-effort: registrar el fallo y seguir con las demás líneas.
			result.Failed = append(result.Failed, domain.LineFailure{
				ItemID: line.ItemID,
				Reason: err.Error(),
			})
			uc.log.Warn().Err(err).
				Str("order", order.PONumber).
				Str("item", line.ItemID).
				Msg("línea de recepción falló")
			continue
		}
		result.AdjustedItemIDs = append(result.AdjustedItemIDs, item.ID)
		uc.recorder.Log(ctx, actorID, "recibió",
			fmt.Sprintf("%d %s de %s", line.RequestedQuantity, line.Unit, item.Name),
			entity.ActivityKindOrder, line.Section)
	}

	// RECEIVED solo si todas las líneas incrementaron stock.
	if len(result.Failed) == 0 {
		if err := uc.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusReceived); err != nil {
			return nil, err
		}
		order.Status = entity.OrderStatusReceived
		uc.recorder.Log(ctx, actorID, "completó recepción", order.PONumber,
			entity.ActivityKindOrder, order.Section)
	}

	return result, nil
}
