package postgres

import (
	"context"
	"database/sql"
	"math"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// BecaPostgres is a PostgreSQL implementation of repository.BecaRepository.
type BecaPostgres struct {
	db *sql.DB
}

// NewBecaPostgres creates a new BecaPostgres repository.
func NewBecaPostgres(db *sql.DB) *BecaPostgres {
	return &BecaPostgres{db: db}
}

var _ repository.BecaRepository = (*BecaPostgres)(nil)

// FindByID fetches a beca by id.
func (r *BecaPostgres) FindByID(ctx context.Context, id int64) (*model.Beca, error) {
	const q = `
		SELECT id, id_convocatoria, codigo, nombre, cupos_disponibles, monto, created_at
		FROM beca
		WHERE id = $1
	`
	var b model.Beca
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID,
		&b.IDConvocatoria,
		&b.Codigo,
		&b.Nombre,
		&b.CuposDisponibles,
		&b.Monto,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// Resumen computes outcome statistics across postulaciones, optionally scoped
// to one convocatoria. Everything is derived at query time.
func (r *BecaPostgres) Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error) {
	res := &model.ResumenResultados{}

	const qCounts = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE estado_postulado = 'APROBADO'),
			COUNT(*) FILTER (WHERE estado_postulado = 'DENEGADO'),
			COUNT(*) FILTER (WHERE estado_postulado = 'PENDIENTE'),
			COALESCE(AVG(puntaje_final), 0)
		FROM postulacion
		WHERE ($1::bigint IS NULL OR id_convocatoria = $1)
	`
	if err := r.db.QueryRowContext(ctx, qCounts, idConvocatoria).Scan(
		&res.TotalPostulaciones,
		&res.Aprobadas,
		&res.Denegadas,
		&res.EnProceso,
		&res.PromedioPuntaje,
	); err != nil {
		return nil, err
	}
	if res.TotalPostulaciones > 0 {
		res.TasaAprobacion = round2(float64(res.Aprobadas) / float64(res.TotalPostulaciones) * 100)
	}
	res.PromedioPuntaje = round2(res.PromedioPuntaje)

	const qPresupuesto = `
		SELECT
			COALESCE((SELECT SUM(monto * cupos_disponibles) FROM beca WHERE ($1::bigint IS NULL OR id_convocatoria = $1)), 0),
			COALESCE((
				SELECT SUM(b.monto)
				FROM postulacion p
				JOIN beca b ON b.id = p.id_beca
				WHERE p.estado_postulado = 'APROBADO'
				  AND ($1::bigint IS NULL OR p.id_convocatoria = $1)
			), 0)
	`
	if err := r.db.QueryRowContext(ctx, qPresupuesto, idConvocatoria).Scan(
		&res.PresupuestoTotal,
		&res.PresupuestoUtilizado,
	); err != nil {
		return nil, err
	}

	const qBecas = `
		SELECT
			b.id,
			b.nombre,
			b.cupos_disponibles,
			COUNT(p.id),
			COUNT(p.id) FILTER (WHERE p.estado_postulado = 'APROBADO')
		FROM beca b
		LEFT JOIN postulacion p ON p.id_beca = b.id
		WHERE ($1::bigint IS NULL OR b.id_convocatoria = $1)
		GROUP BY b.id, b.nombre, b.cupos_disponibles
		ORDER BY b.id ASC
	`
	rows, err := r.db.QueryContext(ctx, qBecas, idConvocatoria)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res.Becas = make([]model.BecaResumen, 0)
	for rows.Next() {
		var b model.BecaResumen
		if err := rows.Scan(&b.ID, &b.Nombre, &b.Cupos, &b.Postulaciones, &b.Aprobadas); err != nil {
			return nil, err
		}
		if b.Cupos > 0 {
			b.TasaOcupacion = round2(float64(b.Aprobadas) / float64(b.Cupos) * 100)
		}
		res.Becas = append(res.Becas, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
