package repository

import (
	"context"

	"dubss/internal/model"
)

// DocumentoRepository defines data access for digitized document artifacts.
type DocumentoRepository interface {
	// Upsert stores the artifact for (id_tramite, tipo_documento), superseding
	// any previous artifact for the same pair. The previous storage key, if a
	// row was replaced, is returned so the caller can discard the orphaned
	// object.
	Upsert(ctx context.Context, doc *model.Documento) (stored *model.Documento, supersededKey string, err error)

	// FindByID returns a documento by id.
	FindByID(ctx context.Context, id int64) (*model.Documento, error)

	// ListByTramite returns all artifacts of a trámite, catalog order not
	// guaranteed; callers needing the gate view use ValidatedTipos.
	ListByTramite(ctx context.Context, idTramite int64) ([]model.Documento, error)

	// ValidatedTipos returns the set of document types with a validated
	// artifact for the trámite.
	ValidatedTipos(ctx context.Context, idTramite int64) (map[model.TipoDocumento]bool, error)

	// CountByTramite returns how many artifacts the trámite has.
	CountByTramite(ctx context.Context, idTramite int64) (int, error)

	// HasInvalid reports whether the trámite has any presented document marked
	// not validated.
	HasInvalid(ctx context.Context, idTramite int64) (bool, error)

	// SetValidado flips the validation flag of a documento and returns the
	// updated row.
	SetValidado(ctx context.Context, id int64, validado bool) (*model.Documento, error)

	// Delete removes a documento row by id. Missing rows are not an error.
	Delete(ctx context.Context, id int64) error
}
