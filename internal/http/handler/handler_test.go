package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"dubss/internal/model"
	"dubss/internal/repository"
	repoMocks "dubss/internal/repository/mocks"
	"dubss/internal/service"
	serviceMocks "dubss/internal/service/mocks"
	"dubss/internal/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePostulacion(t *testing.T) {
	mockSvc := new(serviceMocks.MockPostulacionService)
	app := fiber.New()
	app.Post("/postulaciones", CreatePostulacion(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.PostulacionConTramite{
			Postulacion: model.Postulacion{ID: 7, IDEstudiante: 1, IDBeca: 2},
			Tramite:     model.Tramite{ID: 7, Codigo: "TRA-000007", EstadoActual: workflow.EstadoPendiente},
		}
		mockSvc.On("Create", mock.Anything, service.CreatePostulacionInput{
			IDEstudiante: 1, IDBeca: 2, IDConvocatoria: 3, IDFormulario: 4,
		}).Return(expected, nil).Once()

		body := bytes.NewBufferString(`{"id_estudiante":1,"id_beca":2,"id_convocatoria":3,"id_formulario":4}`)
		req := httptest.NewRequest(http.MethodPost, "/postulaciones", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result service.PostulacionConTramite
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "TRA-000007", result.Tramite.Codigo)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		body := bytes.NewBufferString(`{"id_estudiante":1}`)
		req := httptest.NewRequest(http.MethodPost, "/postulaciones", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrAlreadyExists).Once()

		body := bytes.NewBufferString(`{"id_estudiante":1,"id_beca":2,"id_convocatoria":3}`)
		req := httptest.NewRequest(http.MethodPost, "/postulaciones", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ALREADY_EXISTS", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetTramite(t *testing.T) {
	mockSvc := new(serviceMocks.MockTramiteService)
	app := fiber.New()
	app.Get("/tramites/:id", GetTramite(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Tramite{ID: 42, Codigo: "TRA-000042", EstadoActual: workflow.EstadoEnValidacion}
		mockSvc.On("Get", mock.Anything, int64(42)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tramites/42", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Tramite
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "TRA-000042", result.Codigo)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/tramites/99", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tramites/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
		// The 400 must short-circuit: the service never sees the bad id.
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, int64(0))
	})

	t.Run("negative id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tramites/-7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, int64(0))
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, int64(-7))
	})
}

func TestListTramites(t *testing.T) {
	mockSvc := new(serviceMocks.MockTramiteService)
	app := fiber.New()
	app.Get("/tramites", ListTramites(mockSvc))

	t.Run("filtered by estado", func(t *testing.T) {
		expected := &service.TramiteListResult{
			Items: []model.Tramite{{ID: 1, EstadoActual: workflow.EstadoEnValidacion}},
			Total: 1,
		}
		mockSvc.On("ListByEstado", mock.Anything, []workflow.Estado{workflow.EstadoEnValidacion}, 10, 0).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tramites?estado=EN_VALIDACION", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.TramiteListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown estado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tramites?estado=WAT", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ESTADO", res.Error.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tramites?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_LIMIT", res.Error.Code)
	})
}

func TestTransitionTramite(t *testing.T) {
	mockSvc := new(serviceMocks.MockTramiteService)
	app := fiber.New()
	app.Post("/tramites/:id/transicion", TransitionTramite(mockSvc))

	post := func(id, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/tramites/"+id+"/transicion", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		revisor := int64(5)
		expected := &model.Tramite{ID: 1, EstadoActual: workflow.EstadoEnValidacion}
		mockSvc.On("Transition", mock.Anything, int64(1), workflow.EstadoEnValidacion, &revisor, "revisando").
			Return(expected, nil).Once()

		resp := post("1", `{"estado":"EN_VALIDACION","observaciones":"revisando","revisado_por":5}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Tramite
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, workflow.EstadoEnValidacion, result.EstadoActual)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown estado", func(t *testing.T) {
		resp := post("1", `{"estado":"NOPE"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ESTADO", res.Error.Code)
	})

	t.Run("missing estado", func(t *testing.T) {
		resp := post("1", `{"observaciones":"x"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("illegal edge", func(t *testing.T) {
		mockSvc.On("Transition", mock.Anything, int64(1), workflow.EstadoAprobado, (*int64)(nil), "").
			Return(nil, &service.InvalidTransitionError{From: workflow.EstadoPendiente, To: workflow.EstadoAprobado}).Once()

		resp := post("1", `{"estado":"APROBADO"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TRANSITION", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("incomplete documents", func(t *testing.T) {
		mockSvc.On("Transition", mock.Anything, int64(1), workflow.EstadoDigitalizado, (*int64)(nil), "").
			Return(nil, &service.IncompleteDocumentsError{Missing: []model.TipoDocumento{model.TipoKardex}}).Once()

		resp := post("1", `{"estado":"DIGITALIZADO"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INCOMPLETE_DOCUMENTS", res.Error.Code)
		assert.Contains(t, res.Error.Message, "KARDEX")
		mockSvc.AssertExpectations(t)
	})

	t.Run("concurrent conflict", func(t *testing.T) {
		mockSvc.On("Transition", mock.Anything, int64(1), workflow.EstadoValidado, (*int64)(nil), "").
			Return(nil, service.ErrConflict).Once()

		resp := post("1", `{"estado":"VALIDADO"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CONFLICT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocumento(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentoService)
	app := fiber.New()
	app.Post("/tramites/:id/documentos", UploadDocumento(mockSvc))

	newUpload := func(tipo string) *http.Request {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "ci.pdf")
		part.Write([]byte("%PDF-1.4"))
		if tipo != "" {
			writer.WriteField("tipo_documento", tipo)
		}
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/tramites/3/documentos", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("success", func(t *testing.T) {
		expected := &model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoCI}
		mockSvc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterDocumentoInput) bool {
			return in.IDTramite == 3 && in.Tipo == model.TipoCI && in.NombreOriginal == "ci.pdf"
		})).Return(expected, nil).Once()

		resp, _ := app.Test(newUpload("CI"))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Documento
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(11), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown tipo", func(t *testing.T) {
		resp, _ := app.Test(newUpload("PASAPORTE"))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TIPO_DOCUMENTO", res.Error.Code)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tramites/3/documentos", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("wrong state", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidState).Once()

		resp, _ := app.Test(newUpload("CI"))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STATE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestValidateDocumento(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentoService)
	app := fiber.New()
	app.Post("/documentos/:id/validacion", ValidateDocumento(mockSvc))

	t.Run("records the verdict", func(t *testing.T) {
		updated := &model.Documento{ID: 11, IDTramite: 3, TipoDocumento: model.TipoKardex, Validado: false}
		mockSvc.On("SetValidado", mock.Anything, int64(11), false).Return(updated, nil).Once()

		body := bytes.NewBufferString(`{"validado": false}`)
		req := httptest.NewRequest(http.MethodPost, "/documentos/11/validacion", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Documento
		json.NewDecoder(resp.Body).Decode(&result)
		assert.False(t, result.Validado)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validado is required", func(t *testing.T) {
		body := bytes.NewBufferString(`{"revisado_por": 4}`)
		req := httptest.NewRequest(http.MethodPost, "/documentos/11/validacion", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDADO_REQUIRED", res.Error.Code)
	})

	t.Run("outside review state", func(t *testing.T) {
		mockSvc.On("SetValidado", mock.Anything, int64(12), true).Return(nil, service.ErrInvalidState).Once()

		body := bytes.NewBufferString(`{"validado": true}`)
		req := httptest.NewRequest(http.MethodPost, "/documentos/12/validacion", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STATE", res.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		body := bytes.NewBufferString(`{"validado": true}`)
		req := httptest.NewRequest(http.MethodPost, "/documentos/abc/validacion", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "SetValidado", mock.Anything, int64(0), true)
	})
}

func TestCompletitud(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentoService)
	app := fiber.New()
	app.Get("/tramites/:id/completitud", Completitud(mockSvc))

	t.Run("incomplete", func(t *testing.T) {
		mockSvc.On("IsComplete", mock.Anything, int64(3), model.TiposObligatorios).
			Return(false, []model.TipoDocumento{model.TipoKardex}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tramites/3/completitud", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Completo  bool     `json:"completo"`
			Faltantes []string `json:"faltantes"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Completo)
		assert.Equal(t, []string{"KARDEX"}, body.Faltantes)
		mockSvc.AssertExpectations(t)
	})

	t.Run("complete", func(t *testing.T) {
		mockSvc.On("IsComplete", mock.Anything, int64(3), model.TiposObligatorios).
			Return(true, []model.TipoDocumento(nil), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tramites/3/completitud", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Completo  bool     `json:"completo"`
			Faltantes []string `json:"faltantes"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Completo)
		assert.Empty(t, body.Faltantes)
		mockSvc.AssertExpectations(t)
	})
}

func TestRankBeca(t *testing.T) {
	mockSvc := new(serviceMocks.MockRankingService)
	app := fiber.New()
	app.Post("/becas/:id/ranking", RankBeca(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.RankingResult{
			IDBeca:           2,
			CuposDisponibles: 1,
			Entries: []service.RankingEntryResult{
				{IDPostulacion: 10, Posicion: 1, Puntaje: 91.5, Resultado: model.PostuladoAprobado},
				{IDPostulacion: 11, Posicion: 2, Puntaje: 80.0, Resultado: model.PostuladoDenegado},
			},
		}
		mockSvc.On("Rank", mock.Anything, int64(2), (*int64)(nil)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/becas/2/ranking", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.RankingResult
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Entries, 2)
		assert.Equal(t, model.PostuladoAprobado, result.Entries[0].Resultado)
		assert.Equal(t, model.PostuladoDenegado, result.Entries[1].Resultado)
		mockSvc.AssertExpectations(t)
	})

	t.Run("beca not found", func(t *testing.T) {
		mockSvc.On("Rank", mock.Anything, int64(9), (*int64)(nil)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/becas/9/ranking", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("with actor", func(t *testing.T) {
		actor := int64(77)
		mockSvc.On("Rank", mock.Anything, int64(2), &actor).
			Return(&service.RankingResult{IDBeca: 2}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/becas/2/ranking", bytes.NewBufferString(`{"ejecutado_por":77}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestResumenResultados(t *testing.T) {
	mockSvc := new(serviceMocks.MockRankingService)
	app := fiber.New()
	app.Get("/resultados/resumen", ResumenResultados(mockSvc))

	t.Run("global", func(t *testing.T) {
		expected := &model.ResumenResultados{TotalPostulaciones: 10, Aprobadas: 4}
		mockSvc.On("Resumen", mock.Anything, (*int64)(nil)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/resultados/resumen", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.ResumenResultados
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 10, result.TotalPostulaciones)
		mockSvc.AssertExpectations(t)
	})

	t.Run("scoped to convocatoria", func(t *testing.T) {
		conv := int64(3)
		mockSvc.On("Resumen", mock.Anything, &conv).Return(&model.ResumenResultados{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/resultados/resumen?convocatoria=3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid convocatoria", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resultados/resumen?convocatoria=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListNotificaciones(t *testing.T) {
	mockRepo := new(repoMocks.MockNotificacionRepository)
	app := fiber.New()
	app.Get("/estudiantes/:id/notificaciones", ListNotificaciones(mockRepo))

	t.Run("success", func(t *testing.T) {
		mockRepo.On("ListByEstudiante", mock.Anything, int64(1), mock.Anything).
			Return(&repository.PageResult[model.Notificacion]{
				Items: []model.Notificacion{{ID: 1, Titulo: "Trámite Validado"}},
				Total: 1,
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/estudiantes/1/notificaciones", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data  []model.Notificacion `json:"data"`
			Total int                  `json:"total"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Data, 1)
		assert.Equal(t, 1, body.Total)
		mockRepo.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Tramites:       new(serviceMocks.MockTramiteService),
		Documentos:     new(serviceMocks.MockDocumentoService),
		Postulaciones:  new(serviceMocks.MockPostulacionService),
		Ranking:        new(serviceMocks.MockRankingService),
		Notificaciones: new(repoMocks.MockNotificacionRepository),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		// Fiber returns 405 by default if route exists but method doesn't match
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
