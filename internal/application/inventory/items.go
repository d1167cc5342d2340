package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

// ItemUseCase alta, consulta y baja de items del inventario.
// Las cantidades solo cambian a través del StockLedger; aquí solo el ciclo de vida.
type ItemUseCase struct {
	items      repository.ItemRepository
	recorder   *activity.Recorder
	defaultMin int64
}

// NewItemUseCase construye el caso de uso de items.
func NewItemUseCase(items repository.ItemRepository, recorder *activity.Recorder, defaultMin int64) *ItemUseCase {
	return &ItemUseCase{items: items, recorder: recorder, defaultMin: defaultMin}
}

// CreateItemInput entrada para el alta de un item.
type CreateItemInput struct {
	Section     string
	OwnerID     string
	Name        string
	Category    string
	Quantity    int64
	Unit        string
	Price       decimal.Decimal
	MinQuantity int64
	BatchNumber string
	ExpiryDate  *time.Time
}

// Create da de alta un item con el estado derivado de su cantidad inicial.
func (uc *ItemUseCase) Create(ctx context.Context, actorID string, in CreateItemInput) (*entity.StockItem, error) {
	if in.Section == "" || in.Name == "" || in.Quantity < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	min := in.MinQuantity
	if min <= 0 {
		min = uc.defaultMin
	}
	item := &entity.StockItem{
		ID:          uuid.New().String(),
		Section:     in.Section,
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Price:       in.Price,
		Status:      entity.StatusFor(in.Quantity, min),
		MinQuantity: in.MinQuantity,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
		LastUpdated: time.Now(),
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.recorder.Log(ctx, actorID, "agregó", item.Name, entity.ActivityKindInventory, in.Section)
	return item, nil
}

// Get consulta un item dentro de su sección.
func (uc *ItemUseCase) Get(ctx context.Context, itemID, section string) (*entity.StockItem, error) {
	return uc.items.Get(ctx, itemID, section)
}

// Delete elimina un item de su sección (nunca cross-section).
func (uc *ItemUseCase) Delete(ctx context.Context, actorID, itemID, section string) error {
	item, err := uc.items.Get(ctx, itemID, section)
	if err != nil {
		return err
	}
	if err := uc.items.Delete(ctx, itemID, section); err != nil {
		return err
	}
	uc.recorder.Log(ctx, actorID, "eliminó", item.Name, entity.ActivityKindInventory, section)
	return nil
}
