package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
	"github.com/jcastano/cadena-api/pkg/logger"
)

// Recorder escribe entradas del registro de actividad en modo best-effort:
// un fallo al escribir se registra en el log y nunca se propaga al caller,
// para que la actividad no afecte el resultado de la operación de negocio.
type Recorder struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.ActivityRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Log registra una entrada de actividad (actor, verbo, objetivo).
func (r *Recorder) Log(ctx context.Context, actorID, verb, target, kind, section string) {
	entry := &entity.ActivityEntry{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Verb:      verb,
		Target:    target,
		Kind:      kind,
		Section:   section,
		CreatedAt: time.Now(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Warn().Err(err).
			Str("actor", actorID).
			Str("verb", verb).
			Str("kind", kind).
			Msg("registro de actividad falló (ignorado)")
	}
}

// List devuelve las entradas de actividad de una sección.
func (r *Recorder) List(ctx context.Context, section string, limit, offset int) ([]*entity.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.repo.ListBySection(ctx, section, limit, offset)
}
