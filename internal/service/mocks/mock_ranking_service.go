package mocks

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) Rank(ctx context.Context, idBeca int64, actorID *int64) (*service.RankingResult, error) {
	args := m.Called(ctx, idBeca, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RankingResult), args.Error(1)
}

func (m *MockRankingService) Resumen(ctx context.Context, idConvocatoria *int64) (*model.ResumenResultados, error) {
	args := m.Called(ctx, idConvocatoria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResumenResultados), args.Error(1)
}
