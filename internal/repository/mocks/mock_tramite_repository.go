package mocks

import (
	"context"
	"time"

	"dubss/internal/model"
	"dubss/internal/repository"
	"dubss/internal/workflow"

	"github.com/stretchr/testify/mock"
)

type MockTramiteRepository struct {
	mock.Mock
}

func (m *MockTramiteRepository) Create(ctx context.Context, idPostulacion int64, fechaCreacion time.Time) (*model.Tramite, error) {
	args := m.Called(ctx, idPostulacion, fechaCreacion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteRepository) FindByID(ctx context.Context, id int64) (*model.Tramite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteRepository) FindByPostulacion(ctx context.Context, idPostulacion int64) (*model.Tramite, error) {
	args := m.Called(ctx, idPostulacion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteRepository) ListByEstado(ctx context.Context, estados []workflow.Estado, pq repository.PageQuery) (*repository.PageResult[model.Tramite], error) {
	args := m.Called(ctx, estados, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Tramite]), args.Error(1)
}

func (m *MockTramiteRepository) History(ctx context.Context, idTramite int64) ([]model.HistorialEntry, error) {
	args := m.Called(ctx, idTramite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistorialEntry), args.Error(1)
}

func (m *MockTramiteRepository) ApplyTransition(ctx context.Context, idTramite int64, from workflow.Estado, entry model.HistorialEntry) (*model.Tramite, error) {
	args := m.Called(ctx, idTramite, from, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tramite), args.Error(1)
}

func (m *MockTramiteRepository) CountProcessedBy(ctx context.Context, operadorID int64) (int, error) {
	args := m.Called(ctx, operadorID)
	return args.Int(0), args.Error(1)
}
