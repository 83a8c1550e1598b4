package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// DocumentoPostgres is a PostgreSQL implementation of
// repository.DocumentoRepository.
type DocumentoPostgres struct {
	db *sql.DB
}

// NewDocumentoPostgres creates a new DocumentoPostgres repository.
func NewDocumentoPostgres(db *sql.DB) *DocumentoPostgres {
	return &DocumentoPostgres{db: db}
}

var _ repository.DocumentoRepository = (*DocumentoPostgres)(nil)

const documentoColumns = `id, id_tramite, tipo_documento, nombre_archivo, ruta_digital, tamanho_bytes, mime_type, validado, subido_por, fecha_subida`

func scanDocumento(row interface{ Scan(...any) error }) (*model.Documento, error) {
	var (
		d      model.Documento
		tipo   string
		subido sql.NullInt64
	)
	if err := row.Scan(
		&d.ID,
		&d.IDTramite,
		&tipo,
		&d.NombreArchivo,
		&d.RutaDigital,
		&d.TamanhoBytes,
		&d.MimeType,
		&d.Validado,
		&subido,
		&d.FechaSubida,
	); err != nil {
		return nil, err
	}
	d.TipoDocumento = model.TipoDocumento(tipo)
	if subido.Valid {
		id := subido.Int64
		d.SubidoPor = &id
	}
	return &d, nil
}

// Upsert stores the artifact for (id_tramite, tipo_documento). An existing row
// for the pair is superseded in place and its old storage key returned so the
// caller can discard the orphaned object.
func (r *DocumentoPostgres) Upsert(ctx context.Context, doc *model.Documento) (*model.Documento, string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qPrev = `SELECT ruta_digital FROM documento WHERE id_tramite = $1 AND tipo_documento = $2`
	var superseded string
	if err := tx.QueryRowContext(ctx, qPrev, doc.IDTramite, string(doc.TipoDocumento)).Scan(&superseded); err != nil && err != sql.ErrNoRows {
		return nil, "", err
	}

	const q = `
		INSERT INTO documento (id_tramite, tipo_documento, nombre_archivo, ruta_digital, tamanho_bytes, mime_type, validado, subido_por, fecha_subida)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id_tramite, tipo_documento) DO UPDATE SET
			nombre_archivo = EXCLUDED.nombre_archivo,
			ruta_digital   = EXCLUDED.ruta_digital,
			tamanho_bytes  = EXCLUDED.tamanho_bytes,
			mime_type      = EXCLUDED.mime_type,
			validado       = EXCLUDED.validado,
			subido_por     = EXCLUDED.subido_por,
			fecha_subida   = EXCLUDED.fecha_subida
		RETURNING ` + documentoColumns
	stored, err := scanDocumento(tx.QueryRowContext(ctx, q,
		doc.IDTramite,
		string(doc.TipoDocumento),
		doc.NombreArchivo,
		doc.RutaDigital,
		doc.TamanhoBytes,
		doc.MimeType,
		doc.Validado,
		doc.SubidoPor,
		doc.FechaSubida,
	))
	if err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit: %w", err)
	}
	return stored, superseded, nil
}

// FindByID fetches a single documento by id.
func (r *DocumentoPostgres) FindByID(ctx context.Context, id int64) (*model.Documento, error) {
	const q = `SELECT ` + documentoColumns + ` FROM documento WHERE id = $1`
	return scanDocumento(r.db.QueryRowContext(ctx, q, id))
}

// ListByTramite returns all artifacts of a trámite.
func (r *DocumentoPostgres) ListByTramite(ctx context.Context, idTramite int64) ([]model.Documento, error) {
	const q = `SELECT ` + documentoColumns + ` FROM documento WHERE id_tramite = $1 ORDER BY tipo_documento ASC`
	rows, err := r.db.QueryContext(ctx, q, idTramite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Documento, 0)
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ValidatedTipos returns the set of tipos with a validated artifact.
func (r *DocumentoPostgres) ValidatedTipos(ctx context.Context, idTramite int64) (map[model.TipoDocumento]bool, error) {
	const q = `SELECT tipo_documento FROM documento WHERE id_tramite = $1 AND validado = TRUE`
	rows, err := r.db.QueryContext(ctx, q, idTramite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tipos := make(map[model.TipoDocumento]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tipos[model.TipoDocumento(t)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tipos, nil
}

// CountByTramite counts the artifacts of a trámite.
func (r *DocumentoPostgres) CountByTramite(ctx context.Context, idTramite int64) (int, error) {
	const q = `SELECT COUNT(*) FROM documento WHERE id_tramite = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, idTramite).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// HasInvalid reports whether any presented document of the trámite is marked
// not validated.
func (r *DocumentoPostgres) HasInvalid(ctx context.Context, idTramite int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM documento WHERE id_tramite = $1 AND validado = FALSE)`
	var invalid bool
	if err := r.db.QueryRowContext(ctx, q, idTramite).Scan(&invalid); err != nil {
		return false, err
	}
	return invalid, nil
}

// SetValidado flips the validation flag of a documento.
func (r *DocumentoPostgres) SetValidado(ctx context.Context, id int64, validado bool) (*model.Documento, error) {
	const q = `
		UPDATE documento SET validado = $2 WHERE id = $1
		RETURNING ` + documentoColumns
	return scanDocumento(r.db.QueryRowContext(ctx, q, id, validado))
}

// Delete removes a documento row by id. It does not return an error if the row
// does not exist.
func (r *DocumentoPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documento WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
