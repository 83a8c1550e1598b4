package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/service"
	"dubss/internal/workflow"

	"github.com/stretchr/testify/mock"
)

type MockTramiteService struct {
	mock.Mock
}

func (m *MockTramiteService) Create(ctx context.Context, idPostulacion int64) (*model.Tramite, error) {
	args := m.Called(ctx, idPostulacion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteService) Transition(ctx context.Context, idTramite int64, to workflow.Estado, actorID *int64, observaciones string) (*model.Tramite, error) {
	args := m.Called(ctx, idTramite, to, actorID, observaciones)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteService) Get(ctx context.Context, id int64) (*model.Tramite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteService) History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error) {
	args := m.Called(ctx, idTramite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistorialEntry), args.Error(1)
}

func (m *MockTramiteService) ListByEstado(ctx context.Context, estados []workflow.Estado, limit, offset int) (*service.TramiteListResult, error) {
	args := m.Called(ctx, estados, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TramiteListResult), args.Error(1)
}

func (m *MockTramiteService) EstadisticasOperador(ctx context.Context, operadorID int64) (*service.OperadorStats, error) {
	args := m.Called(ctx, operadorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OperadorStats), args.Error(1)
}
