package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// PostulacionPostgres is a PostgreSQL implementation of
// repository.PostulacionRepository.
type PostulacionPostgres struct {
	db *sql.DB
}

// NewPostulacionPostgres creates a new PostulacionPostgres repository.
func NewPostulacionPostgres(db *sql.DB) *PostulacionPostgres {
	return &PostulacionPostgres{db: db}
}

var _ repository.PostulacionRepository = (*PostulacionPostgres)(nil)

const postulacionColumns = `id, id_estudiante, id_beca, id_convocatoria, id_formulario, fecha_postulacion, estado_postulado, puntaje_final, posicion_ranking, motivo_rechazo, created_at`

func scanPostulacion(row interface{ Scan(...any) error }) (*model.Postulacion, error) {
	var (
		p        model.Postulacion
		estado   string
		puntaje  sql.NullFloat64
		posicion sql.NullInt64
		motivo   sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.IDEstudiante,
		&p.IDBeca,
		&p.IDConvocatoria,
		&p.IDFormulario,
		&p.FechaPostulacion,
		&estado,
		&puntaje,
		&posicion,
		&motivo,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.EstadoPostulado = model.EstadoPostulado(estado)
	if puntaje.Valid {
		v := puntaje.Float64
		p.PuntajeFinal = &v
	}
	if posicion.Valid {
		v := int(posicion.Int64)
		p.PosicionRanking = &v
	}
	if motivo.Valid {
		p.MotivoRechazo = motivo.String
	}
	return &p, nil
}

// Create inserts a postulación. The unique (id_estudiante, id_beca) index
// surfaces as ErrDuplicatePostulacion.
func (r *PostulacionPostgres) Create(ctx context.Context, p *model.Postulacion) (*model.Postulacion, error) {
	const q = `
		INSERT INTO postulacion (id_estudiante, id_beca, id_convocatoria, id_formulario, fecha_postulacion, estado_postulado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + postulacionColumns
	stored, err := scanPostulacion(r.db.QueryRowContext(ctx, q,
		p.IDEstudiante,
		p.IDBeca,
		p.IDConvocatoria,
		p.IDFormulario,
		p.FechaPostulacion,
		string(p.EstadoPostulado),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicatePostulacion
		}
		return nil, err
	}
	return stored, nil
}

// isUniqueViolation matches the Postgres unique_violation SQLSTATE, 23505,
// without depending on a concrete driver error type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ SQLState() string }
	if errors.As(err, &coder) {
		return coder.SQLState() == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// FindByID fetches one postulación by id.
func (r *PostulacionPostgres) FindByID(ctx context.Context, id int64) (*model.Postulacion, error) {
	const q = `SELECT ` + postulacionColumns + ` FROM postulacion WHERE id = $1`
	return scanPostulacion(r.db.QueryRowContext(ctx, q, id))
}

// ListByEstudiante returns a student's postulaciones, newest first.
func (r *PostulacionPostgres) ListByEstudiante(ctx context.Context, idEstudiante int64, pq repository.PageQuery) (*repository.PageResult[model.Postulacion], error) {
	const qCount = `SELECT COUNT(*) FROM postulacion WHERE id_estudiante = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, idEstudiante).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + postulacionColumns + `
		FROM postulacion
		WHERE id_estudiante = $1
		ORDER BY fecha_postulacion DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, idEstudiante, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Postulacion, 0)
	for rows.Next() {
		p, err := scanPostulacion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Postulacion]{Items: items, Total: total}, nil
}

// ListEligibleByBeca returns the classification-eligible pool of a beca in
// ranking order: puntaje descending, then earlier fecha_postulacion, then lower
// id. The tie-break chain makes the order total and deterministic.
func (r *PostulacionPostgres) ListEligibleByBeca(ctx context.Context, idBeca int64) ([]model.Postulacion, error) {
	const q = `
		SELECT ` + postulacionColumns + `
		FROM postulacion
		WHERE id_beca = $1 AND puntaje_final IS NOT NULL
		ORDER BY puntaje_final DESC, fecha_postulacion ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, idBeca)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Postulacion, 0)
	for rows.Next() {
		p, err := scanPostulacion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
