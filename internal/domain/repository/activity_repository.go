package repository

import (
	"context"

	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// ActivityRepository define el puerto del registro de actividad.
type ActivityRepository interface {
	Create(ctx context.Context, entry *entity.ActivityEntry) error
	ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.ActivityEntry, error)
}
