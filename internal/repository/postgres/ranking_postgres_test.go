package postgres

import (
	"context"
	"testing"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingPostgres_Apply(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRankingPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("advances en_clasificacion tramites through to the outcome", func(t *testing.T) {
		entries := []repository.RankingEntry{
			{IDPostulacion: 10, IDEstudiante: 100, Posicion: 1, Puntaje: 95.5, Resultado: model.PostuladoAprobado},
			{IDPostulacion: 11, IDEstudiante: 101, Posicion: 2, Puntaje: 88.0, Resultado: model.PostuladoDenegado},
		}

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// entry 1: approved
		mock.ExpectExec("UPDATE postulacion").
			WithArgs(1, "APROBADO", int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, estado_actual FROM tramite").
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "estado_actual"}).AddRow(10, "EN_CLASIFICACION"))
		mock.ExpectExec("UPDATE tramite").
			WithArgs("CLASIFICADO", int64(10), now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO tramite_historial").
			WithArgs(int64(10), "EN_CLASIFICACION", "CLASIFICADO", "Clasificación completada", nil, now).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE tramite").
			WithArgs("APROBADO", int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO tramite_historial").
			WithArgs(int64(10), "CLASIFICADO", "APROBADO", sqlmock.AnyArg(), nil, now).
			WillReturnResult(sqlmock.NewResult(2, 1))

		// entry 2: denied
		mock.ExpectExec("UPDATE postulacion").
			WithArgs(2, "DENEGADO", int64(11), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, estado_actual FROM tramite").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "estado_actual"}).AddRow(11, "EN_CLASIFICACION"))
		mock.ExpectExec("UPDATE tramite").
			WithArgs("CLASIFICADO", int64(11), now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO tramite_historial").
			WithArgs(int64(11), "EN_CLASIFICACION", "CLASIFICADO", "Clasificación completada", nil, now).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectExec("UPDATE tramite").
			WithArgs("DENEGADO", int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO tramite_historial").
			WithArgs(int64(11), "CLASIFICADO", "DENEGADO", sqlmock.AnyArg(), nil, now).
			WillReturnResult(sqlmock.NewResult(4, 1))

		mock.ExpectCommit()

		err := repo.Apply(ctx, 2, nil, entries, now)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tramite outside en_clasificacion keeps its machine untouched", func(t *testing.T) {
		entries := []repository.RankingEntry{
			{IDPostulacion: 10, IDEstudiante: 100, Posicion: 1, Puntaje: 95.5, Resultado: model.PostuladoAprobado},
		}

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE postulacion").
			WithArgs(1, "APROBADO", int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, estado_actual FROM tramite").
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "estado_actual"}).AddRow(10, "EN_DIGITALIZACION"))
		mock.ExpectCommit()

		err := repo.Apply(ctx, 2, nil, entries, now)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
