package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPostulacionRepository struct {
	mock.Mock
}

func (m *MockPostulacionRepository) Create(ctx context.Context, p *model.Postulacion) (*model.Postulacion, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Postulacion), args.Error(1)
}

func (m *MockPostulacionRepository) FindByID(ctx context.Context, id int64) (*model.Postulacion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Postulacion), args.Error(1)
}

func (m *MockPostulacionRepository) ListByEstudiante(ctx context.Context, idEstudiante int64, pq repository.PageQuery) (*repository.PageResult[model.Postulacion], error) {
	args := m.Called(ctx, idEstudiante, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Postulacion]), args.Error(1)
}

func (m *MockPostulacionRepository) ListEligibleByBeca(ctx context.Context, idBeca int64) ([]model.Postulacion, error) {
	args := m.Called(ctx, idBeca)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Postulacion), args.Error(1)
}
