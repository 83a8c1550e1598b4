package repository

import (
	"context"
	"errors"
	"time"

	"dubss/internal/model"
	"dubss/internal/workflow"
)

// ErrEstadoMoved is returned by ApplyTransition when the trámite's current state
// no longer matches the expected "from" state: a concurrent transition won the
// race. Callers should re-read and re-validate before retrying.
var ErrEstadoMoved = errors.New("tramite estado moved concurrently")

// TramiteRepository defines data access for trámites and their historial using
// SQL queries only. No business logic here; the workflow rules live in the
// service layer; this layer guarantees the storage invariants: state update and
// history append are atomic, and historial rows are never updated or deleted.
type TramiteRepository interface {
	// Create inserts a trámite in the initial state together with its creation
	// historial entry (estado_anterior NULL), in one transaction. The codigo is
	// derived from the assigned id and returned on the stored record.
	Create(ctx context.Context, idPostulacion int64, fechaCreacion time.Time) (*model.Tramite, error)

	// FindByID returns a trámite by id.
	FindByID(ctx context.Context, id int64) (*model.Tramite, error)

	// FindByPostulacion returns the trámite owned by a postulación.
	FindByPostulacion(ctx context.Context, idPostulacion int64) (*model.Tramite, error)

	// ListByEstado returns trámites currently in any of the given states,
	// oldest first, with pagination.
	ListByEstado(ctx context.Context, estados []workflow.Estado, pq PageQuery) (*PageResult[model.Tramite], error)

	// History returns the historial entries of a trámite in insertion order.
	History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error)

	// ApplyTransition atomically moves a trámite from the expected state to the
	// new state and appends the corresponding historial entry. The update is a
	// compare-and-set on estado_actual: if the row has moved since the caller
	// read it, ErrEstadoMoved is returned and nothing is written.
	ApplyTransition(ctx context.Context, idTramite int64, from workflow.Estado, entry model.HistorialEntry) (*model.Tramite, error)

	// CountProcessedBy returns how many distinct trámites carry a historial
	// entry reviewed by the given operator.
	CountProcessedBy(ctx context.Context, operadorID int64) (int, error)
}
