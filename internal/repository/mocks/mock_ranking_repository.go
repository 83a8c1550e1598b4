package mocks

import (
	"context"
	"time"

	"dubss/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRankingRepository struct {
	mock.Mock
}

func (m *MockRankingRepository) Apply(ctx context.Context, idBeca int64, actorID *int64, entries []repository.RankingEntry, when time.Time) error {
	args := m.Called(ctx, idBeca, actorID, entries, when)
	return args.Error(0)
}
