package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// RankingEntryResult is one row of a computed ranking, in ranked order.
type RankingEntryResult struct {
	IDPostulacion int64                 `json:"id_postulacion"`
	Posicion      int                   `json:"posicion"`
	Puntaje       float64               `json:"puntaje"`
	Resultado     model.EstadoPostulado `json:"resultado"`
}

// RankingResult is the outcome of ranking one beca's eligible pool.
type RankingResult struct {
	IDBeca           int64                `json:"id_beca"`
	CuposDisponibles int                  `json:"cupos_disponibles"`
	Entries          []RankingEntryResult `json:"entries"`
}

// RankingService converts a beca's pool of scored postulaciones into a total
// order and a binary APROBADO/DENEGADO outcome under the seat count. A rank is
// always a full recomputation: every eligible postulación gets a fresh
// position, never an incremental patch on top of a prior run.
type RankingService interface {
	// Rank computes and persists the ranking of a beca. actorID attributes the
	// resulting historial entries; nil means system-initiated.
	Rank(ctx context.Context, idBeca int64, actorID *int64) (*RankingResult, error)

	// Resumen returns derived outcome statistics, optionally scoped to one
	// convocatoria.
	Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error)
}

type rankingService struct {
	becas         repository.BecaRepository
	postulaciones repository.PostulacionRepository
	rankings      repository.RankingRepository
	notifier      Notifier
	tramites      repository.TramiteRepository
}

// NewRankingService constructs a RankingService.
func NewRankingService(
	becas repository.BecaRepository,
	postulaciones repository.PostulacionRepository,
	rankings repository.RankingRepository,
	tramites repository.TramiteRepository,
	notifier Notifier,
) RankingService {
	return &rankingService{
		becas:         becas,
		postulaciones: postulaciones,
		rankings:      rankings,
		tramites:      tramites,
		notifier:      notifier,
	}
}

func (s *rankingService) Rank(ctx context.Context, idBeca int64, actorID *int64) (*RankingResult, error) {
	beca, err := s.becas.FindByID(ctx, idBeca)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if beca.CuposDisponibles <= 0 {
		return nil, fmt.Errorf("%w: beca %d has cupos_disponibles %d", ErrInvalidConfiguration, idBeca, beca.CuposDisponibles)
	}

	// The repository returns the pool already in ranking order: puntaje DESC,
	// fecha_postulacion ASC, id ASC. Positions are the 1-based walk of that
	// order.
	pool, err := s.postulaciones.ListEligibleByBeca(ctx, idBeca)
	if err != nil {
		return nil, err
	}

	result := &RankingResult{
		IDBeca:           idBeca,
		CuposDisponibles: beca.CuposDisponibles,
		Entries:          make([]RankingEntryResult, 0, len(pool)),
	}
	if len(pool) == 0 {
		// Nothing to rank, nothing to write.
		return result, nil
	}

	entries := make([]repository.RankingEntry, 0, len(pool))
	for i, p := range pool {
		pos := i + 1
		resultado := model.PostuladoDenegado
		if pos <= beca.CuposDisponibles {
			resultado = model.PostuladoAprobado
		}
		entries = append(entries, repository.RankingEntry{
			IDPostulacion: p.ID,
			IDEstudiante:  p.IDEstudiante,
			Posicion:      pos,
			Puntaje:       *p.PuntajeFinal,
			Resultado:     resultado,
		})
		result.Entries = append(result.Entries, RankingEntryResult{
			IDPostulacion: p.ID,
			Posicion:      pos,
			Puntaje:       *p.PuntajeFinal,
			Resultado:     resultado,
		})
	}

	if err := s.rankings.Apply(ctx, idBeca, actorID, entries, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.notifyOutcomes(ctx, entries)
	return result, nil
}

// notifyOutcomes delivers the RESULTADO message per applicant after the ranking
// committed. Best effort only.
func (s *rankingService) notifyOutcomes(ctx context.Context, entries []repository.RankingEntry) {
	for _, e := range entries {
		titulo := "Beca aprobada"
		mensaje := fmt.Sprintf("¡Felicidades! Tu postulación fue aprobada en la posición %d.", e.Posicion)
		if e.Resultado == model.PostuladoDenegado {
			titulo = "Beca denegada"
			mensaje = fmt.Sprintf("Tu postulación quedó en la posición %d, fuera de los cupos disponibles.", e.Posicion)
		}

		var idTramite int64
		if t, err := s.tramites.FindByPostulacion(ctx, e.IDPostulacion); err == nil {
			idTramite = t.ID
		}
		s.notifier.Notify(ctx, model.Notificacion{
			IDEstudiante: e.IDEstudiante,
			IDTramite:    idTramite,
			Tipo:         model.NotifResultado,
			Titulo:       titulo,
			Mensaje:      mensaje,
		})
	}
}

func (s *rankingService) Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error) {
	return s.becas.Resumen(ctx, idConvocatoria)
}
