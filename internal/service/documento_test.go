package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"dubss/internal/model"
	repoMocks "dubss/internal/repository/mocks"
	"dubss/internal/storage"
	storeMocks "dubss/internal/storage/mocks"
	"dubss/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentoMocks struct {
	store      *storeMocks.MockStorage
	documentos *repoMocks.MockDocumentoRepository
	tramites   *repoMocks.MockTramiteRepository
}

func newDocumentoService(t *testing.T) (DocumentoService, *documentoMocks) {
	t.Helper()
	m := &documentoMocks{
		store:      new(storeMocks.MockStorage),
		documentos: new(repoMocks.MockDocumentoRepository),
		tramites:   new(repoMocks.MockTramiteRepository),
	}
	// The real workflow service drives the auto-transition on first upload,
	// wired over the same trámite repository mock.
	wf := NewTramiteService(m.tramites, m.documentos, new(repoMocks.MockPostulacionRepository), new(repoMocks.MockBecaRepository), &captureNotifier{})
	svc := NewDocumentoService(m.store, m.documentos, m.tramites, wf)
	return svc, m
}

func registerInput(tipo model.TipoDocumento, r io.Reader) RegisterDocumentoInput {
	return RegisterDocumentoInput{
		IDTramite:      3,
		Tipo:           tipo,
		Reader:         r,
		NombreOriginal: "carnet.pdf",
		MimeType:       "application/pdf",
		Size:           8,
	}
}

func TestDocumentoService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("first upload moves validado to en_digitalizacion", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		r := strings.NewReader("%PDF-1.4")

		tram := &model.Tramite{ID: 3, IDPostulacion: 30, EstadoActual: workflow.EstadoValidado}
		m.tramites.On("FindByID", ctx, int64(3)).Return(tram, nil)

		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "tramites/3/documentos/CI_") && strings.HasSuffix(key, ".pdf")
		}), r, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/pdf" && opt.Metadata["tipo-documento"] == "CI"
		})).Return(storage.ObjectInfo{Key: "tramites/3/documentos/CI_x.pdf", Size: 8}, nil)

		m.documentos.On("Upsert", ctx, mock.MatchedBy(func(doc *model.Documento) bool {
			return doc.IDTramite == 3 && doc.TipoDocumento == model.TipoCI && doc.Validado
		})).Return(&model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoCI}, "", nil)

		// auto-transition guard and CAS
		m.documentos.On("CountByTramite", ctx, int64(3)).Return(1, nil)
		m.tramites.On("ApplyTransition", ctx, int64(3), workflow.EstadoValidado, mock.Anything).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}, nil)

		doc, err := svc.Register(ctx, registerInput(model.TipoCI, r))
		require.NoError(t, err)
		assert.Equal(t, int64(11), doc.ID)
		m.tramites.AssertExpectations(t)
		m.store.AssertExpectations(t)
	})

	t.Run("upload in en_digitalizacion does not transition", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		r := strings.NewReader("%PDF-1.4")

		tram := &model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}
		m.tramites.On("FindByID", ctx, int64(3)).Return(tram, nil)
		m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(storage.ObjectInfo{Key: "tramites/3/documentos/KARDEX_x.pdf", Size: 8}, nil)
		m.documentos.On("Upsert", ctx, mock.Anything).
			Return(&model.Documento{ID: 12}, "", nil)

		_, err := svc.Register(ctx, registerInput(model.TipoKardex, r))
		require.NoError(t, err)
		m.tramites.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload during review is presented without transitioning", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		r := strings.NewReader("%PDF-1.4")

		tram := &model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnValidacion}
		m.tramites.On("FindByID", ctx, int64(3)).Return(tram, nil)
		m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(storage.ObjectInfo{Key: "tramites/3/documentos/CI_x.pdf", Size: 8}, nil)
		m.documentos.On("Upsert", ctx, mock.MatchedBy(func(doc *model.Documento) bool {
			return doc.IDTramite == 3 && doc.Validado
		})).Return(&model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoCI, Validado: true}, "", nil)

		doc, err := svc.Register(ctx, registerInput(model.TipoCI, r))
		require.NoError(t, err)
		assert.True(t, doc.Validado)
		m.tramites.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("re-upload supersedes the previous artifact", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		r := strings.NewReader("%PDF-1.4")

		tram := &model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}
		m.tramites.On("FindByID", ctx, int64(3)).Return(tram, nil)
		m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(storage.ObjectInfo{Key: "tramites/3/documentos/CI_new.pdf", Size: 8}, nil)
		m.documentos.On("Upsert", ctx, mock.Anything).
			Return(&model.Documento{ID: 11}, "tramites/3/documentos/CI_old.pdf", nil)
		m.store.On("Delete", ctx, "tramites/3/documentos/CI_old.pdf").Return(nil)

		_, err := svc.Register(ctx, registerInput(model.TipoCI, r))
		require.NoError(t, err)
		m.store.AssertExpectations(t)
	})

	t.Run("db failure rolls the object back", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		r := strings.NewReader("%PDF-1.4")

		tram := &model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}
		m.tramites.On("FindByID", ctx, int64(3)).Return(tram, nil)
		m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		m.documentos.On("Upsert", ctx, mock.Anything).
			Return(nil, "", errors.New("constraint violation"))
		m.store.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "tramites/3/documentos/CI_")
		})).Return(nil)

		_, err := svc.Register(ctx, registerInput(model.TipoCI, r))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed")
		m.store.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc, _ := newDocumentoService(t)
		_, err := svc.Register(ctx, registerInput(model.TipoCI, nil))
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("unknown tipo", func(t *testing.T) {
		svc, _ := newDocumentoService(t)
		_, err := svc.Register(ctx, registerInput("PASAPORTE", strings.NewReader("x")))
		assert.ErrorIs(t, err, ErrInvalidTipoDocumento)
	})

	t.Run("wrong state", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoPendiente}, nil)

		_, err := svc.Register(ctx, registerInput(model.TipoCI, strings.NewReader("x")))
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("tramite not found", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.tramites.On("FindByID", ctx, int64(3)).Return(nil, sql.ErrNoRows)

		_, err := svc.Register(ctx, registerInput(model.TipoCI, strings.NewReader("x")))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentoService_SetValidado(t *testing.T) {
	ctx := context.Background()

	t.Run("records an invalid verdict during review", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(11)).
			Return(&model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoKardex, Validado: true}, nil)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnValidacion}, nil)
		m.documentos.On("SetValidado", ctx, int64(11), false).
			Return(&model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoKardex, Validado: false}, nil)

		doc, err := svc.SetValidado(ctx, 11, false)
		require.NoError(t, err)
		assert.False(t, doc.Validado)
		m.documentos.AssertExpectations(t)
	})

	t.Run("approval clears the mark", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(11)).
			Return(&model.Documento{ID: 11, IDTramite: 3, Validado: false}, nil)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnValidacion}, nil)
		m.documentos.On("SetValidado", ctx, int64(11), true).
			Return(&model.Documento{ID: 11, IDTramite: 3, Validado: true}, nil)

		doc, err := svc.SetValidado(ctx, 11, true)
		require.NoError(t, err)
		assert.True(t, doc.Validado)
	})

	t.Run("outside the review state", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(11)).
			Return(&model.Documento{ID: 11, IDTramite: 3}, nil)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}, nil)

		_, err := svc.SetValidado(ctx, 11, false)
		assert.ErrorIs(t, err, ErrInvalidState)
		m.documentos.AssertNotCalled(t, "SetValidado", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown documento", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.SetValidado(ctx, 99, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid mark blocks the validation approval", func(t *testing.T) {
		// The verdict left by SetValidado is exactly what the
		// EN_VALIDACION→VALIDADO guard reads.
		m := &documentoMocks{
			store:      new(storeMocks.MockStorage),
			documentos: new(repoMocks.MockDocumentoRepository),
			tramites:   new(repoMocks.MockTramiteRepository),
		}
		wf := NewTramiteService(m.tramites, m.documentos, new(repoMocks.MockPostulacionRepository), new(repoMocks.MockBecaRepository), &captureNotifier{})

		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnValidacion}, nil)
		m.documentos.On("HasInvalid", ctx, int64(3)).Return(true, nil)

		_, err := wf.Transition(ctx, 3, workflow.EstadoValidado, nil, "")
		assert.ErrorIs(t, err, ErrDocumentsNotValidated)
	})
}

func TestDocumentoService_IsComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing mandatory tipos", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}, nil)
		m.documentos.On("ValidatedTipos", ctx, int64(3)).Return(map[model.TipoDocumento]bool{
			model.TipoCI: true,
		}, nil)

		complete, missing, err := svc.IsComplete(ctx, 3, model.TiposObligatorios)
		require.NoError(t, err)
		assert.False(t, complete)
		assert.Equal(t, []model.TipoDocumento{model.TipoKardex, model.TipoComprobanteDomicilio}, missing)
	})

	t.Run("optional tipos never block", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.tramites.On("FindByID", ctx, int64(3)).
			Return(&model.Tramite{ID: 3, EstadoActual: workflow.EstadoEnDigitalizacion}, nil)
		m.documentos.On("ValidatedTipos", ctx, int64(3)).Return(map[model.TipoDocumento]bool{
			model.TipoCI:                   true,
			model.TipoKardex:               true,
			model.TipoComprobanteDomicilio: true,
		}, nil)

		complete, missing, err := svc.IsComplete(ctx, 3, model.TiposObligatorios)
		require.NoError(t, err)
		assert.True(t, complete)
		assert.Empty(t, missing)
	})

	t.Run("unknown tramite", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.tramites.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, _, err := svc.IsComplete(ctx, 9, model.TiposObligatorios)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentoService_Expediente(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentoService(t)

	m.tramites.On("FindByID", ctx, int64(3)).
		Return(&model.Tramite{ID: 3, Codigo: "TRA-000003", EstadoActual: workflow.EstadoDigitalizado}, nil)
	m.documentos.On("ListByTramite", ctx, int64(3)).Return([]model.Documento{
		{ID: 1, RutaDigital: "tramites/3/documentos/CI_a.pdf", TipoDocumento: model.TipoCI},
		{ID: 2, RutaDigital: "tramites/3/documentos/KARDEX_b.pdf", TipoDocumento: model.TipoKardex},
	}, nil)
	m.store.On("PresignGet", ctx, "tramites/3/documentos/CI_a.pdf", mock.Anything).
		Return("https://minio/ci", nil)
	m.store.On("PresignGet", ctx, "tramites/3/documentos/KARDEX_b.pdf", mock.Anything).
		Return("https://minio/kardex", nil)

	res, err := svc.Expediente(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "TRA-000003", res.Codigo)
	require.Len(t, res.Documentos, 2)
	assert.Equal(t, "https://minio/ci", res.Documentos[0].URLDescarga)
}

func TestDocumentoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes storage object first", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(5)).
			Return(&model.Documento{ID: 5, RutaDigital: "tramites/3/documentos/CI_a.pdf"}, nil)
		m.store.On("Delete", ctx, "tramites/3/documentos/CI_a.pdf").Return(nil)
		m.documentos.On("Delete", ctx, int64(5)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 5))
		m.store.AssertExpectations(t)
		m.documentos.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(5)).
			Return(&model.Documento{ID: 5, RutaDigital: "tramites/3/documentos/CI_a.pdf"}, nil)
		m.store.On("Delete", ctx, "tramites/3/documentos/CI_a.pdf").Return(errors.New("minio down"))

		err := svc.Delete(ctx, 5)
		require.Error(t, err)
		m.documentos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newDocumentoService(t)
		m.documentos.On("FindByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, 5), ErrNotFound)
	})
}
