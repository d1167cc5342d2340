package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (líneas en JSONB).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, po_number, date_created, status, items, section, created_by, notes`

// Create inserta la orden.
func (r *OrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("serializar líneas: %w", err)
	}
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.PONumber, order.DateCreated, order.Status, items,
		order.Section, order.CreatedBy, order.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var items []byte
	err := row.Scan(
		&o.ID, &o.PONumber, &o.DateCreated, &o.Status, &items,
		&o.Section, &o.CreatedBy, &o.Notes,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("deserializar líneas: %w", err)
	}
	return &o, nil
}

// GetByID obtiene una orden por id.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// UpdateStatus actualiza el estado de la orden.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySection lista órdenes de una sección, más recientes primero.
func (r *OrderRepo) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM purchase_orders
		WHERE section = $1
		ORDER BY date_created DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, section, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
