package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentoService struct {
	mock.Mock
}

func (m *MockDocumentoService) Register(ctx context.Context, in service.RegisterDocumentoInput) (*model.Documento, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Documento), args.Error(1)
}

func (m *MockDocumentoService) IsComplete(ctx context.Context, idTramite int64, required []model.TipoDocumento) (bool, []model.TipoDocumento, error) {
	args := m.Called(ctx, idTramite, required)
	var missing []model.TipoDocumento
	if args.Get(1) != nil {
		missing = args.Get(1).([]model.TipoDocumento)
	}
	return args.Bool(0), missing, args.Error(2)
}

func (m *MockDocumentoService) SetValidado(ctx context.Context, idDocumento int64, validado bool) (*model.Documento, error) {
	args := m.Called(ctx, idDocumento, validado)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Documento), args.Error(1)
}

func (m *MockDocumentoService) Expediente(ctx context.Context, idTramite int64) (*service.ExpedienteResult, error) {
	args := m.Called(ctx, idTramite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExpedienteResult), args.Error(1)
}

func (m *MockDocumentoService) Delete(ctx context.Context, idDocumento int64) error {
	args := m.Called(ctx, idDocumento)
	return args.Error(0)
}
