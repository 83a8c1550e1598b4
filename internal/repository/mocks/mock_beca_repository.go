package mocks

import (
	"context"

	"dubss/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockBecaRepository struct {
	mock.Mock
}

func (m *MockBecaRepository) FindByID(ctx context.Context, id int64) (*model.Beca, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Beca), args.Error(1)
}

func (m *MockBecaRepository) Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error) {
	args := m.Called(ctx, idConvocatoria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResumenResultados), args.Error(1)
}
