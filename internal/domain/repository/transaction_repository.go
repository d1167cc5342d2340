package repository

import (
	"context"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// TransactionRepository define el puerto del libro de transacciones (append-only).
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error)
}
