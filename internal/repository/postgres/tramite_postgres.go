package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
	"dubss/internal/workflow"
)

// TramitePostgres is a PostgreSQL implementation of repository.TramiteRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type TramitePostgres struct {
	db *sql.DB
}

// NewTramitePostgres creates a new TramitePostgres repository.
func NewTramitePostgres(db *sql.DB) *TramitePostgres {
	return &TramitePostgres{db: db}
}

var _ repository.TramiteRepository = (*TramitePostgres)(nil)

const tramiteColumns = `id, id_postulacion, codigo, estado_actual, clasificado, fecha_creacion, fecha_clasificacion, created_at, updated_at`

func scanTramite(row interface{ Scan(...any) error }) (*model.Tramite, error) {
	var (
		t          model.Tramite
		estado     string
		clasificEn sql.NullTime
	)
	if err := row.Scan(
		&t.ID,
		&t.IDPostulacion,
		&t.Codigo,
		&estado,
		&t.Clasificado,
		&t.FechaCreacion,
		&clasificEn,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.EstadoActual = workflow.Estado(estado)
	if clasificEn.Valid {
		t.FechaClasificacion = &clasificEn.Time
	}
	return &t, nil
}

// Create inserts the trámite and its creation historial entry in one
// transaction. The codigo is derived from the id taken off the sequence, so it
// is unique without a second round trip.
func (r *TramitePostgres) Create(ctx context.Context, idPostulacion int64, fechaCreacion time.Time) (*model.Tramite, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qInsert = `
		INSERT INTO tramite (id, id_postulacion, codigo, estado_actual, clasificado, fecha_creacion)
		SELECT nid, $1, 'TRA-' || lpad(nid::text, 6, '0'), $2, FALSE, $3
		FROM nextval('tramite_id_seq') AS nid
		RETURNING ` + tramiteColumns
	t, err := scanTramite(tx.QueryRowContext(ctx, qInsert, idPostulacion, string(workflow.Inicial), fechaCreacion))
	if err != nil {
		return nil, err
	}

	const qHist = `
		INSERT INTO tramite_historial (id_tramite, estado_anterior, estado_nuevo, observaciones, revisado_por, fecha_revision)
		VALUES ($1, NULL, $2, $3, NULL, $4)
	`
	if _, err := tx.ExecContext(ctx, qHist, t.ID, string(workflow.Inicial), "Trámite creado", fechaCreacion); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// FindByID fetches a single trámite by its id.
func (r *TramitePostgres) FindByID(ctx context.Context, id int64) (*model.Tramite, error) {
	const q = `SELECT ` + tramiteColumns + ` FROM tramite WHERE id = $1`
	return scanTramite(r.db.QueryRowContext(ctx, q, id))
}

// FindByPostulacion fetches the trámite owned by a postulación.
func (r *TramitePostgres) FindByPostulacion(ctx context.Context, idPostulacion int64) (*model.Tramite, error) {
	const q = `SELECT ` + tramiteColumns + ` FROM tramite WHERE id_postulacion = $1`
	return scanTramite(r.db.QueryRowContext(ctx, q, idPostulacion))
}

// ListByEstado returns trámites in the given states, oldest first.
func (r *TramitePostgres) ListByEstado(ctx context.Context, estados []workflow.Estado, pq repository.PageQuery) (*repository.PageResult[model.Tramite], error) {
	names := make([]string, len(estados))
	for i, e := range estados {
		names[i] = string(e)
	}

	const qCount = `SELECT COUNT(*) FROM tramite WHERE estado_actual = ANY($1::text[])`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pqStringArray(names)).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + tramiteColumns + `
		FROM tramite
		WHERE estado_actual = ANY($1::text[])
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, pqStringArray(names), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tramite, 0)
	for rows.Next() {
		t, err := scanTramite(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Tramite]{Items: items, Total: total}, nil
}

// History returns the historial of a trámite in insertion order. There is no
// update or delete counterpart anywhere in this package: historial rows are
// append-only.
func (r *TramitePostgres) History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error) {
	const q = `
		SELECT id, id_tramite, estado_anterior, estado_nuevo, observaciones, revisado_por, fecha_revision
		FROM tramite_historial
		WHERE id_tramite = $1
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, idTramite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.HistorialEntry, 0)
	for rows.Next() {
		var (
			e        model.HistorialEntry
			anterior sql.NullString
			revisor  sql.NullInt64
			nuevo    string
		)
		if err := rows.Scan(&e.ID, &e.IDTramite, &anterior, &nuevo, &e.Observaciones, &revisor, &e.FechaRevision); err != nil {
			return nil, err
		}
		e.EstadoNuevo = workflow.Estado(nuevo)
		if anterior.Valid {
			est := workflow.Estado(anterior.String)
			e.EstadoAnterior = &est
		}
		if revisor.Valid {
			id := revisor.Int64
			e.RevisadoPor = &id
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ApplyTransition performs the compare-and-set state update and the historial
// append in one transaction. If the state no longer matches the expected
// previous state, nothing is written and ErrEstadoMoved is returned.
func (r *TramitePostgres) ApplyTransition(ctx context.Context, idTramite int64, from workflow.Estado, entry model.HistorialEntry) (*model.Tramite, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qUpdate = `
		UPDATE tramite
		SET estado_actual = $1, updated_at = now()
		WHERE id = $2 AND estado_actual = $3
		RETURNING ` + tramiteColumns
	t, err := scanTramite(tx.QueryRowContext(ctx, qUpdate, string(entry.EstadoNuevo), idTramite, string(from)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrEstadoMoved
		}
		return nil, err
	}

	const qHist = `
		INSERT INTO tramite_historial (id_tramite, estado_anterior, estado_nuevo, observaciones, revisado_por, fecha_revision)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var anterior *string
	if entry.EstadoAnterior != nil {
		s := string(*entry.EstadoAnterior)
		anterior = &s
	}
	if _, err := tx.ExecContext(ctx, qHist,
		idTramite,
		anterior,
		string(entry.EstadoNuevo),
		entry.Observaciones,
		entry.RevisadoPor,
		entry.FechaRevision,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// pqStringArray renders ss as a Postgres array literal for $n::text[] binds.
// State names contain no characters needing quoting.
func pqStringArray(ss []string) string {
	return "{" + strings.Join(ss, ",") + "}"
}

// CountProcessedBy counts distinct trámites with a historial entry reviewed by
// the operator.
func (r *TramitePostgres) CountProcessedBy(ctx context.Context, operadorID int64) (int, error) {
	const q = `SELECT COUNT(DISTINCT id_tramite) FROM tramite_historial WHERE revisado_por = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, operadorID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
