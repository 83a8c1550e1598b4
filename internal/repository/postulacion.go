package repository

import (
	"context"
	"errors"

	"dubss/internal/model"
)

// ErrDuplicatePostulacion is returned by Create when the (estudiante, beca)
// pair already has a postulación.
var ErrDuplicatePostulacion = errors.New("postulacion already exists for estudiante and beca")

// PostulacionRepository defines data access for postulaciones.
type PostulacionRepository interface {
	// Create inserts a postulación. The unique (id_estudiante, id_beca)
	// constraint surfaces as ErrDuplicatePostulacion.
	Create(ctx context.Context, p *model.Postulacion) (*model.Postulacion, error)

	// FindByID returns a postulación by id.
	FindByID(ctx context.Context, id int64) (*model.Postulacion, error)

	// ListByEstudiante returns a student's postulaciones, newest first.
	ListByEstudiante(ctx context.Context, idEstudiante int64, pq PageQuery) (*PageResult[model.Postulacion], error)

	// ListEligibleByBeca returns the classification-eligible pool of a beca:
	// every postulación with a non-null puntaje_final, ordered by puntaje
	// descending, fecha_postulacion ascending, id ascending. The ordering is
	// the ranking order; callers must not re-sort.
	ListEligibleByBeca(ctx context.Context, idBeca int64) ([]model.Postulacion, error)
}
