package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
	"dubss/internal/workflow"
)

// TramiteListResult is the service-level DTO for paginated trámites.
type TramiteListResult struct {
	Items []model.Tramite `json:"data"`
	Total int             `json:"total"`
}

// OperadorStats summarizes an operator's processed workload.
type OperadorStats struct {
	TotalProcesados int `json:"total_procesados"`
	Pendientes      int `json:"pendientes"`
}

// TramiteService owns the trámite lifecycle: creation in the initial state and
// every guarded transition through the state graph. State is always re-read
// from the store before a transition is validated; nothing is cached between
// calls.
type TramiteService interface {
	// Create opens the case file for a postulación: a trámite in PENDIENTE
	// with its creation historial entry. Called once per postulación.
	Create(ctx context.Context, idPostulacion int64) (*model.Tramite, error)

	// Transition moves a trámite along one legal edge. It fails with
	// ErrInvalidTransition for edges outside the graph, a guard error when the
	// edge's condition is unmet, and ErrConflict when a concurrent transition
	// won the race. actorID is recorded in the historial for audit; nil means
	// system-initiated. observaciones is required for rejections.
	Transition(ctx context.Context, idTramite int64, to workflow.Estado, actorID *int64, observaciones string) (*model.Tramite, error)

	// Get returns a trámite by id.
	Get(ctx context.Context, id int64) (*model.Tramite, error)

	// History returns the full audit trail of a trámite, oldest first.
	History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error)

	// ListByEstado returns the work queue of trámites in the given states.
	ListByEstado(ctx context.Context, estados []workflow.Estado, limit, offset int) (*TramiteListResult, error)

	// EstadisticasOperador summarizes an operator's processed trámites.
	EstadisticasOperador(ctx context.Context, operadorID int64) (*OperadorStats, error)
}

type tramiteService struct {
	tramites      repository.TramiteRepository
	documentos    repository.DocumentoRepository
	postulaciones repository.PostulacionRepository
	becas         repository.BecaRepository
	notifier      Notifier
}

// NewTramiteService constructs a TramiteService.
func NewTramiteService(
	tramites repository.TramiteRepository,
	documentos repository.DocumentoRepository,
	postulaciones repository.PostulacionRepository,
	becas repository.BecaRepository,
	notifier Notifier,
) TramiteService {
	return &tramiteService{
		tramites:      tramites,
		documentos:    documentos,
		postulaciones: postulaciones,
		becas:         becas,
		notifier:      notifier,
	}
}

func (s *tramiteService) Create(ctx context.Context, idPostulacion int64) (*model.Tramite, error) {
	return s.tramites.Create(ctx, idPostulacion, time.Now().UTC())
}

func (s *tramiteService) Transition(ctx context.Context, idTramite int64, to workflow.Estado, actorID *int64, observaciones string) (*model.Tramite, error) {
	if !to.Valid() {
		return nil, &InvalidTransitionError{To: to}
	}

	t, err := s.tramites.FindByID(ctx, idTramite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	from := t.EstadoActual

	if !workflow.CanTransition(from, to) {
		return nil, &InvalidTransitionError{From: from, To: to}
	}
	if err := s.checkGuard(ctx, t, to, observaciones); err != nil {
		return nil, err
	}

	obs := strings.TrimSpace(observaciones)
	if obs == "" {
		obs = defaultObservacion(to)
	}
	entry := model.HistorialEntry{
		IDTramite:      idTramite,
		EstadoAnterior: &from,
		EstadoNuevo:    to,
		Observaciones:  obs,
		RevisadoPor:    actorID,
		FechaRevision:  time.Now().UTC(),
	}

	updated, err := s.tramites.ApplyTransition(ctx, idTramite, from, entry)
	if err != nil {
		if errors.Is(err, repository.ErrEstadoMoved) {
			return nil, ErrConflict
		}
		return nil, err
	}

	countTransition(from, to)
	s.emitNotification(ctx, updated, obs)
	return updated, nil
}

// checkGuard evaluates the guard of the (current, to) edge against freshly-read
// store state. Legality of the edge itself has already been established.
func (s *tramiteService) checkGuard(ctx context.Context, t *model.Tramite, to workflow.Estado, observaciones string) error {
	switch to {
	case workflow.EstadoValidado:
		invalid, err := s.documentos.HasInvalid(ctx, t.ID)
		if err != nil {
			return err
		}
		if invalid {
			return ErrDocumentsNotValidated
		}

	case workflow.EstadoRechazado:
		if strings.TrimSpace(observaciones) == "" {
			return ErrMissingObservacion
		}

	case workflow.EstadoEnDigitalizacion:
		n, err := s.documentos.CountByTramite(ctx, t.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoArtifacts
		}

	case workflow.EstadoDigitalizado:
		tipos, err := s.documentos.ValidatedTipos(ctx, t.ID)
		if err != nil {
			return err
		}
		missing := make([]model.TipoDocumento, 0)
		for _, req := range model.TiposObligatorios {
			if !tipos[req] {
				missing = append(missing, req)
			}
		}
		if len(missing) > 0 {
			return &IncompleteDocumentsError{Missing: missing}
		}

	case workflow.EstadoClasificado:
		p, err := s.postulaciones.FindByID(ctx, t.IDPostulacion)
		if err != nil {
			return err
		}
		if p.PosicionRanking == nil {
			return ErrRankingPending
		}

	case workflow.EstadoAprobado, workflow.EstadoDenegado:
		p, err := s.postulaciones.FindByID(ctx, t.IDPostulacion)
		if err != nil {
			return err
		}
		if p.PosicionRanking == nil {
			return ErrRankingPending
		}
		b, err := s.becas.FindByID(ctx, p.IDBeca)
		if err != nil {
			return err
		}
		want := workflow.EstadoDenegado
		if *p.PosicionRanking <= b.CuposDisponibles {
			want = workflow.EstadoAprobado
		}
		if to != want {
			return ErrOutcomeMismatch
		}
	}
	return nil
}

// emitNotification sends the student-facing message tied to certain states.
// Best effort only: the transition has already committed.
func (s *tramiteService) emitNotification(ctx context.Context, t *model.Tramite, obs string) {
	var (
		tipo    model.TipoNotificacion
		titulo  string
		mensaje string
	)
	switch t.EstadoActual {
	case workflow.EstadoValidado:
		tipo = model.NotifAlerta
		titulo = "Documentos validados"
		mensaje = "Tu documentación ha sido aprobada. El próximo paso es la digitalización."
	case workflow.EstadoRechazado:
		tipo = model.NotifResultado
		titulo = "Documentos rechazados"
		mensaje = "Tu documentación fue rechazada. Motivo: " + obs
	case workflow.EstadoDigitalizado:
		tipo = model.NotifInformacion
		titulo = "Digitalización completa"
		mensaje = "Tu expediente ha sido digitalizado. El próximo paso es la clasificación automática."
	default:
		return
	}

	p, err := s.postulaciones.FindByID(ctx, t.IDPostulacion)
	if err != nil {
		logEvent(map[string]any{
			"level":      "error",
			"event":      "notification_lookup_failed",
			"id_tramite": t.ID,
			"error":      err.Error(),
		})
		return
	}
	s.notifier.Notify(ctx, model.Notificacion{
		IDEstudiante: p.IDEstudiante,
		IDTramite:    t.ID,
		Tipo:         tipo,
		Titulo:       titulo,
		Mensaje:      mensaje,
	})
}

// defaultObservacion mirrors the operator-facing action wording per state.
func defaultObservacion(to workflow.Estado) string {
	switch to {
	case workflow.EstadoEnValidacion:
		return "Validación iniciada"
	case workflow.EstadoValidado:
		return "Todos los documentos correctos"
	case workflow.EstadoEnDigitalizacion:
		return "Digitalización iniciada"
	case workflow.EstadoDigitalizado:
		return "Todos los documentos han sido digitalizados correctamente"
	case workflow.EstadoEnClasificacion:
		return "Clasificación iniciada"
	case workflow.EstadoClasificado:
		return "Clasificación completada"
	case workflow.EstadoAprobado:
		return "Beca aprobada"
	case workflow.EstadoDenegado:
		return "Beca denegada"
	default:
		return "Cambio de estado"
	}
}

func (s *tramiteService) Get(ctx context.Context, id int64) (*model.Tramite, error) {
	t, err := s.tramites.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tramiteService) History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error) {
	if _, err := s.Get(ctx, idTramite); err != nil {
		return nil, err
	}
	return s.tramites.History(ctx, idTramite)
}

func (s *tramiteService) ListByEstado(ctx context.Context, estados []workflow.Estado, limit, offset int) (*TramiteListResult, error) {
	if limit <= 0 {
		limit = 15
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.tramites.ListByEstado(ctx, estados, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &TramiteListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *tramiteService) EstadisticasOperador(ctx context.Context, operadorID int64) (*OperadorStats, error) {
	procesados, err := s.tramites.CountProcessedBy(ctx, operadorID)
	if err != nil {
		return nil, err
	}
	pendientes, err := s.tramites.ListByEstado(ctx, []workflow.Estado{workflow.EstadoPendiente}, repository.PageQuery{Limit: 1, Offset: 0})
	if err != nil {
		return nil, err
	}
	return &OperadorStats{TotalProcesados: procesados, Pendientes: pendientes.Total}, nil
}
