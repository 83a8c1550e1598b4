package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockNotificacionRepository struct {
	mock.Mock
}

func (m *MockNotificacionRepository) Create(ctx context.Context, n *model.Notificacion) (*model.Notificacion, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notificacion), args.Error(1)
}

func (m *MockNotificacionRepository) ListByEstudiante(ctx context.Context, idEstudiante int64, pq repository.PageQuery) (*repository.PageResult[model.Notificacion], error) {
	args := m.Called(ctx, idEstudiante, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Notificacion]), args.Error(1)
}

func (m *MockNotificacionRepository) MarkLeido(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
