package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dubss/internal/model"
	"dubss/internal/repository"
	"dubss/internal/storage"
	"dubss/internal/workflow"
)

var (
	// ErrReaderNil means no upload body was supplied.
	ErrReaderNil = errors.New("reader is nil")
)

// RegisterDocumentoInput carries one digitized artifact upload.
type RegisterDocumentoInput struct {
	IDTramite      int64
	Tipo           model.TipoDocumento
	Reader         io.Reader
	NombreOriginal string
	MimeType       string
	Size           int64
	SubidoPor      *int64
}

// ExpedienteDocumento is one artifact in the digitized case file view.
type ExpedienteDocumento struct {
	model.Documento
	URLDescarga string `json:"url_descarga"`
}

// ExpedienteResult is the digitized case file of a trámite.
type ExpedienteResult struct {
	IDTramite  int64                 `json:"id_tramite"`
	Codigo     string                `json:"codigo"`
	Estado     workflow.Estado       `json:"estado"`
	Documentos []ExpedienteDocumento `json:"documentos"`
}

// DocumentoService is the document gate: it tracks which required document
// types have a validated artifact for a trámite and answers whether that
// trámite may advance.
type DocumentoService interface {
	// Register uploads the artifact to object storage and stores/supersedes
	// the record for (trámite, tipo). During EN_VALIDACION the upload is a
	// presented document subject to the operator's review; from VALIDADO on
	// it is a digitized artifact. Either way the record enters presumed
	// valid. Registering the first artifact of a VALIDADO trámite moves it
	// to EN_DIGITALIZACION.
	Register(ctx context.Context, in RegisterDocumentoInput) (*model.Documento, error)

	// IsComplete reports whether every required tipo has a validated artifact,
	// returning the missing set when it does not.
	IsComplete(ctx context.Context, idTramite int64, required []model.TipoDocumento) (bool, []model.TipoDocumento, error)

	// SetValidado records an operator's review verdict on one presented
	// document. Only allowed while the owning trámite sits in EN_VALIDACION;
	// a document left marked invalid blocks the EN_VALIDACION→VALIDADO edge.
	SetValidado(ctx context.Context, idDocumento int64, validado bool) (*model.Documento, error)

	// Expediente returns the digitized case file with presigned download URLs.
	Expediente(ctx context.Context, idTramite int64) (*ExpedienteResult, error)

	// Delete removes an artifact from storage and its record.
	Delete(ctx context.Context, idDocumento int64) error
}

type documentoService struct {
	store      storage.Storage
	documentos repository.DocumentoRepository
	tramites   repository.TramiteRepository
	workflowOp TramiteService
}

// NewDocumentoService constructs a DocumentoService. workflowOp drives the
// VALIDADO→EN_DIGITALIZACION edge triggered by the first upload.
func NewDocumentoService(
	store storage.Storage,
	documentos repository.DocumentoRepository,
	tramites repository.TramiteRepository,
	workflowOp TramiteService,
) DocumentoService {
	return &documentoService{
		store:      store,
		documentos: documentos,
		tramites:   tramites,
		workflowOp: workflowOp,
	}
}

func (s *documentoService) Register(ctx context.Context, in RegisterDocumentoInput) (*model.Documento, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if !in.Tipo.Valid() {
		return nil, ErrInvalidTipoDocumento
	}

	t, err := s.tramites.FindByID(ctx, in.IDTramite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch t.EstadoActual {
	case workflow.EstadoEnValidacion, workflow.EstadoValidado, workflow.EstadoEnDigitalizacion:
	default:
		return nil, ErrInvalidState
	}

	ext := filepath.Ext(in.NombreOriginal)
	genName := fmt.Sprintf("%s_%s%s", in.Tipo, uuid.New().String(), ext)
	key := filepath.ToSlash(filepath.Join("tramites", fmt.Sprintf("%d", in.IDTramite), "documentos", genName))

	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.MimeType,
		Metadata: map[string]string{
			"original-filename": in.NombreOriginal,
			"tipo-documento":    string(in.Tipo),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Uploads enter presumed valid; only an explicit operator verdict marks a
	// document invalid, and a superseding re-upload clears that mark.
	doc := &model.Documento{
		IDTramite:     in.IDTramite,
		TipoDocumento: in.Tipo,
		NombreArchivo: genName,
		RutaDigital:   objInfo.Key,
		TamanhoBytes:  objInfo.Size,
		MimeType:      in.MimeType,
		Validado:      true,
		SubidoPor:     in.SubidoPor,
		FechaSubida:   time.Now().UTC(),
	}
	stored, supersededKey, err := s.documentos.Upsert(ctx, doc)
	if err != nil {
		// Rollback: discard the object just uploaded.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// The superseded artifact is now unreachable; drop it best effort.
	if supersededKey != "" && supersededKey != key {
		if delErr := s.store.Delete(ctx, supersededKey); delErr != nil {
			logEvent(map[string]any{
				"level": "warn",
				"event": "superseded_artifact_delete_failed",
				"key":   supersededKey,
				"error": delErr.Error(),
			})
		}
	}

	// First artifact of a VALIDADO trámite starts digitization. A concurrent
	// upload may have taken the edge already; losing that race is fine.
	if t.EstadoActual == workflow.EstadoValidado {
		if _, err := s.workflowOp.Transition(ctx, in.IDTramite, workflow.EstadoEnDigitalizacion, in.SubidoPor, ""); err != nil {
			if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidTransition) {
				return nil, err
			}
		}
	}

	return stored, nil
}

func (s *documentoService) IsComplete(ctx context.Context, idTramite int64, required []model.TipoDocumento) (bool, []model.TipoDocumento, error) {
	if _, err := s.tramites.FindByID(ctx, idTramite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil, ErrNotFound
		}
		return false, nil, err
	}

	tipos, err := s.documentos.ValidatedTipos(ctx, idTramite)
	if err != nil {
		return false, nil, err
	}
	missing := make([]model.TipoDocumento, 0)
	for _, req := range required {
		if !tipos[req] {
			missing = append(missing, req)
		}
	}
	return len(missing) == 0, missing, nil
}

// SetValidado records the operator verdict on one presented document.
func (s *documentoService) SetValidado(ctx context.Context, idDocumento int64, validado bool) (*model.Documento, error) {
	doc, err := s.documentos.FindByID(ctx, idDocumento)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t, err := s.tramites.FindByID(ctx, doc.IDTramite)
	if err != nil {
		return nil, err
	}
	if t.EstadoActual != workflow.EstadoEnValidacion {
		return nil, ErrInvalidState
	}

	return s.documentos.SetValidado(ctx, idDocumento, validado)
}

func (s *documentoService) Expediente(ctx context.Context, idTramite int64) (*ExpedienteResult, error) {
	t, err := s.tramites.FindByID(ctx, idTramite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	docs, err := s.documentos.ListByTramite(ctx, idTramite)
	if err != nil {
		return nil, err
	}

	out := &ExpedienteResult{
		IDTramite:  t.ID,
		Codigo:     t.Codigo,
		Estado:     t.EstadoActual,
		Documentos: make([]ExpedienteDocumento, 0, len(docs)),
	}
	for _, d := range docs {
		url, err := s.store.PresignGet(ctx, d.RutaDigital, 15*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", d.RutaDigital, err)
		}
		out.Documentos = append(out.Documentos, ExpedienteDocumento{Documento: d, URLDescarga: url})
	}
	return out, nil
}

func (s *documentoService) Delete(ctx context.Context, idDocumento int64) error {
	doc, err := s.documentos.FindByID(ctx, idDocumento)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; a failure keeps the row so the reference is
	// not lost.
	if err := s.store.Delete(ctx, doc.RutaDigital); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.documentos.Delete(ctx, idDocumento)
}
