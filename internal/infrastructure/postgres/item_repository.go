package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
// Cada operación es un statement independiente: el contrato del store no
// ofrece transacciones multi-item y las mutaciones concurrentes sobre un
// mismo item son last-write-wins.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, section, owner_id, name, category, quantity, unit, price,
	status, min_quantity, batch_number, expiry_date, last_updated`

func scanItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.Section, &it.OwnerID, &it.Name, &it.Category, &it.Quantity,
		&it.Unit, &it.Price, &it.Status, &it.MinQuantity, &it.BatchNumber,
		&it.ExpiryDate, &it.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserta un item nuevo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Section, item.OwnerID, item.Name, item.Category,
		item.Quantity, item.Unit, item.Price, item.Status, item.MinQuantity,
		item.BatchNumber, item.ExpiryDate, item.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Get obtiene un item por id dentro de su sección.
func (r *ItemRepo) Get(ctx context.Context, itemID, section string) (*entity.StockItem, error) {
	query := `SELECT ` + itemColumns + ` FROM stock_items WHERE id = $1 AND section = $2`
	it, err := scanItem(r.q.QueryRow(ctx, query, itemID, section))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// UpdateQuantity persiste cantidad y estado (read-modify-write del ledger, sin lock).
func (r *ItemRepo) UpdateQuantity(ctx context.Context, itemID, section string, quantity int64, status string, updatedAt time.Time) (*entity.StockItem, error) {
	query := `
		UPDATE stock_items
		SET quantity = $3, status = $4, last_updated = $5
		WHERE id = $1 AND section = $2
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(ctx, query, itemID, section, quantity, status, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update item quantity: %w", err)
	}
	return it, nil
}

// Delete elimina el item dentro de su sección.
func (r *ItemRepo) Delete(ctx context.Context, itemID, section string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1 AND section = $2`, itemID, section)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPage devuelve una página keyset de la sección ordenada por id, más el
// token de continuación opaco. Se pide pageSize+1 para saber si hay más páginas.
func (r *ItemRepo) ListPage(ctx context.Context, section string, pageSize int, token string) (*repository.ItemPage, error) {
	if pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	cursor, err := decodeToken(token)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	query := `
		SELECT ` + itemColumns + `
		FROM stock_items
		WHERE section = $1 AND id > $2
		ORDER BY id
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, section, cursor, pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("list items page: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.StockItem, 0, pageSize)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items page: %w", err)
	}

	page := &repository.ItemPage{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		page.NextToken = encodeToken(page.Items[pageSize-1].ID)
	}
	return page, nil
}
