package repository

import (
	"context"
	"time"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// ItemPage una página de items más el token de continuación opaco.
// NextToken vacío señala que no existen más páginas al momento del último fetch.
type ItemPage struct {
	Items     []*entity.StockItem
	NextToken string
}

// ItemRepository define el puerto de persistencia para StockItem (DIP).
// El store NO ofrece transacciones multi-item: cada operación es un write
// independiente y la concurrencia sobre un mismo item es last-write-wins.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	// Get retorna domain.ErrNotFound si el item no existe en la sección.
	Get(ctx context.Context, itemID, section string) (*entity.StockItem, error)
	// UpdateQuantity persiste cantidad y estado derivado (read-modify-write del StockLedger).
	UpdateQuantity(ctx context.Context, itemID, section string, quantity int64, status string, updatedAt time.Time) (*entity.StockItem, error)
	// Delete elimina el item dentro de su sección (nunca cross-section).
	Delete(ctx context.Context, itemID, section string) error
	// ListPage retorna una página de items de la sección. token vacío inicia el
	// escaneo; el token retornado es opaco para el caller.
	ListPage(ctx context.Context, section string, pageSize int, token string) (*ItemPage, error)
}
