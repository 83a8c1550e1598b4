package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPostulacionService struct {
	mock.Mock
}

func (m *MockPostulacionService) Create(ctx context.Context, in service.CreatePostulacionInput) (*service.PostulacionConTramite, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostulacionConTramite), args.Error(1)
}

func (m *MockPostulacionService) Get(ctx context.Context, id int64) (*model.Postulacion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Postulacion), args.Error(1)
}

func (m *MockPostulacionService) ListByEstudiante(ctx context.Context, idEstudiante int64, limit, offset int) (*service.PostulacionListResult, error) {
	args := m.Called(ctx, idEstudiante, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostulacionListResult), args.Error(1)
}
