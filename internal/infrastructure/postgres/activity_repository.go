package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del registro de actividad sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador de actividad.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create inserta una entrada de actividad.
func (r *ActivityRepo) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, actor_id, verb, target, kind, section, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ActorID, entry.Verb, entry.Target, entry.Kind,
		entry.Section, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create activity entry: %w", err)
	}
	return nil
}

// ListBySection lista la actividad de una sección, más reciente primero.
func (r *ActivityRepo) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.ActivityEntry, error) {
	query := `
		SELECT id, actor_id, verb, target, kind, section, created_at
		FROM activity_log
		WHERE section = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, section, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []*entity.ActivityEntry
	for rows.Next() {
		var e entity.ActivityEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Verb, &e.Target, &e.Kind, &e.Section, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
