package repository

import (
	"context"
	"time"

	"dubss/internal/model"
)

// RankingEntry is one row of a computed ranking, in ranked order.
type RankingEntry struct {
	IDPostulacion int64
	IDEstudiante  int64
	Posicion      int
	Puntaje       float64
	Resultado     model.EstadoPostulado
}

// RankingRepository persists a beca's ranking as a single unit of work.
type RankingRepository interface {
	// Apply writes the full recomputed ranking for a beca in one transaction,
	// serialized per beca (concurrent Apply calls for the same beca queue up).
	// For every entry it sets posicion_ranking and estado_postulado on the
	// postulación; for each owning trámite currently in EN_CLASIFICACION it
	// additionally drives EN_CLASIFICACION→CLASIFICADO→{APROBADO|DENEGADO},
	// appending one historial entry per hop, and stamps clasificado /
	// fecha_clasificacion. actorID attributes the historial entries; nil means
	// system-initiated.
	Apply(ctx context.Context, idBeca int64, actorID *int64, entries []RankingEntry, when time.Time) error
}
