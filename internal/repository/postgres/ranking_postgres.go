package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
	"dubss/internal/workflow"
)

// RankingPostgres is a PostgreSQL implementation of
// repository.RankingRepository. A whole ranking is one transaction guarded by a
// per-beca advisory lock, so concurrent Apply calls for the same beca serialize
// and each observer sees either the previous complete ranking or the new one,
// never a mix.
type RankingPostgres struct {
	db *sql.DB
}

// NewRankingPostgres creates a new RankingPostgres repository.
func NewRankingPostgres(db *sql.DB) *RankingPostgres {
	return &RankingPostgres{db: db}
}

var _ repository.RankingRepository = (*RankingPostgres)(nil)

// Apply writes the recomputed ranking for a beca. For each entry the
// postulación gets its posicion_ranking and estado_postulado; owning trámites
// sitting in EN_CLASIFICACION are advanced through CLASIFICADO to the final
// outcome, one historial entry per hop.
func (r *RankingPostgres) Apply(ctx context.Context, idBeca int64, actorID *int64, entries []repository.RankingEntry, when time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Serialize rankings per beca.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, idBeca); err != nil {
		return fmt.Errorf("acquire beca lock: %w", err)
	}

	for _, e := range entries {
		const qPost = `
			UPDATE postulacion
			SET posicion_ranking = $1, estado_postulado = $2
			WHERE id = $3 AND id_beca = $4
		`
		if _, err := tx.ExecContext(ctx, qPost, e.Posicion, string(e.Resultado), e.IDPostulacion, idBeca); err != nil {
			return fmt.Errorf("update postulacion %d: %w", e.IDPostulacion, err)
		}

		const qTramite = `
			SELECT id, estado_actual FROM tramite WHERE id_postulacion = $1 FOR UPDATE
		`
		var (
			idTramite int64
			estado    string
		)
		if err := tx.QueryRowContext(ctx, qTramite, e.IDPostulacion).Scan(&idTramite, &estado); err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return fmt.Errorf("lock tramite of postulacion %d: %w", e.IDPostulacion, err)
		}
		if workflow.Estado(estado) != workflow.EstadoEnClasificacion {
			// The trámite is not under classification; positions were still
			// recomputed above, but the machine is not touched.
			continue
		}

		if err := r.advance(ctx, tx, idTramite, workflow.EstadoEnClasificacion, workflow.EstadoClasificado,
			"Clasificación completada", actorID, when, true); err != nil {
			return err
		}

		outcome := workflow.EstadoAprobado
		obs := fmt.Sprintf("Beca aprobada: posición %d con puntaje %.2f", e.Posicion, e.Puntaje)
		if e.Resultado == model.PostuladoDenegado {
			outcome = workflow.EstadoDenegado
			obs = fmt.Sprintf("Beca denegada: posición %d fuera de los cupos disponibles", e.Posicion)
		}
		if err := r.advance(ctx, tx, idTramite, workflow.EstadoClasificado, outcome, obs, actorID, when, false); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *RankingPostgres) advance(ctx context.Context, tx *sql.Tx, idTramite int64, from, to workflow.Estado, obs string, actorID *int64, when time.Time, stampClasificado bool) error {
	q := `UPDATE tramite SET estado_actual = $1, updated_at = now() WHERE id = $2`
	if stampClasificado {
		q = `UPDATE tramite SET estado_actual = $1, clasificado = TRUE, fecha_clasificacion = $3, updated_at = now() WHERE id = $2`
	}
	args := []any{string(to), idTramite}
	if stampClasificado {
		args = append(args, when)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("advance tramite %d to %s: %w", idTramite, to, err)
	}

	const qHist = `
		INSERT INTO tramite_historial (id_tramite, estado_anterior, estado_nuevo, observaciones, revisado_por, fecha_revision)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, qHist, idTramite, string(from), string(to), obs, actorID, when); err != nil {
		return fmt.Errorf("append historial for tramite %d: %w", idTramite, err)
	}
	return nil
}
