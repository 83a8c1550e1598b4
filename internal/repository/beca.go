package repository

import (
	"context"

	"dubss/internal/model"
)

// BecaRepository defines read access to becas and derived result statistics.
// Becas themselves are managed by the administrative CRUD surface; the workflow
// core only reads them.
type BecaRepository interface {
	// FindByID returns a beca by id.
	FindByID(ctx context.Context, id int64) (*model.Beca, error)

	// Resumen computes aggregate result statistics, optionally scoped to one
	// convocatoria. All figures are derived from postulación rows at call
	// time; nothing is cached or separately stored.
	Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error)
}
