package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// CreatePostulacionInput carries a new application.
type CreatePostulacionInput struct {
	IDEstudiante   int64
	IDBeca         int64
	IDConvocatoria int64
	IDFormulario   int64
}

// PostulacionConTramite pairs a created postulación with its opened case file.
type PostulacionConTramite struct {
	Postulacion model.Postulacion `json:"postulacion"`
	Tramite     model.Tramite     `json:"tramite"`
}

// PostulacionListResult is the service-level DTO for paginated postulaciones.
type PostulacionListResult struct {
	Items []model.Postulacion `json:"data"`
	Total int                 `json:"total"`
}

// PostulacionService manages applications. Creating a postulación opens its
// trámite in the same call: every application has exactly one case file from
// the moment it exists.
type PostulacionService interface {
	// Create registers an application and opens its trámite. At most one
	// postulación may exist per (estudiante, beca); a second attempt fails
	// with ErrAlreadyExists.
	Create(ctx context.Context, in CreatePostulacionInput) (*PostulacionConTramite, error)

	// Get returns a postulación by id.
	Get(ctx context.Context, id int64) (*model.Postulacion, error)

	// ListByEstudiante returns a student's postulaciones, newest first.
	ListByEstudiante(ctx context.Context, idEstudiante int64, limit, offset int) (*PostulacionListResult, error)
}

type postulacionService struct {
	postulaciones repository.PostulacionRepository
	becas         repository.BecaRepository
	tramites      TramiteService
}

// NewPostulacionService constructs a PostulacionService.
func NewPostulacionService(
	postulaciones repository.PostulacionRepository,
	becas repository.BecaRepository,
	tramites TramiteService,
) PostulacionService {
	return &postulacionService{
		postulaciones: postulaciones,
		becas:         becas,
		tramites:      tramites,
	}
}

func (s *postulacionService) Create(ctx context.Context, in CreatePostulacionInput) (*PostulacionConTramite, error) {
	if _, err := s.becas.FindByID(ctx, in.IDBeca); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := &model.Postulacion{
		IDEstudiante:     in.IDEstudiante,
		IDBeca:           in.IDBeca,
		IDConvocatoria:   in.IDConvocatoria,
		IDFormulario:     in.IDFormulario,
		FechaPostulacion: time.Now().UTC(),
		EstadoPostulado:  model.PostuladoPendiente,
	}
	stored, err := s.postulaciones.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePostulacion) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	t, err := s.tramites.Create(ctx, stored.ID)
	if err != nil {
		return nil, err
	}

	return &PostulacionConTramite{Postulacion: *stored, Tramite: *t}, nil
}

func (s *postulacionService) Get(ctx context.Context, id int64) (*model.Postulacion, error) {
	p, err := s.postulaciones.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *postulacionService) ListByEstudiante(ctx context.Context, idEstudiante int64, limit, offset int) (*PostulacionListResult, error) {
	if limit <= 0 {
		limit = 15
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.postulaciones.ListByEstudiante(ctx, idEstudiante, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PostulacionListResult{Items: res.Items, Total: res.Total}, nil
}
