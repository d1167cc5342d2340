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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro de transacciones sobre PostgreSQL.
// Las líneas viajan como JSONB en la misma fila: la transacción es un documento
// inmutable y su escritura es un solo INSERT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la transacción completa (cabecera + líneas JSONB).
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	items, err := json.Marshal(txn.Items)
	if err != nil {
		return fmt.Errorf("serializar líneas: %w", err)
	}
	query := `
		INSERT INTO transactions
			(id, invoice_number, date, type, items, total_amount, payment_method,
			 section, performed_by, customer_name, customer_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		txn.ID, txn.InvoiceNumber, txn.Date, txn.Type, items, txn.TotalAmount,
		txn.PaymentMethod, txn.Section, txn.PerformedBy, txn.CustomerName, txn.CustomerPhone,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

const txnColumns = `id, invoice_number, date, type, items, total_amount,
	payment_method, section, performed_by, customer_name, customer_phone`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var items []byte
	err := row.Scan(
		&t.ID, &t.InvoiceNumber, &t.Date, &t.Type, &items, &t.TotalAmount,
		&t.PaymentMethod, &t.Section, &t.PerformedBy, &t.CustomerName, &t.CustomerPhone,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &t.Items); err != nil {
		return nil, fmt.Errorf("deserializar líneas: %w", err)
	}
	return &t, nil
}

// GetByID obtiene una transacción por id.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListBySection lista transacciones de una sección, más recientes primero.
func (r *TransactionRepo) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM transactions
		WHERE section = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, section, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
