package mocks

import (
	"context"

	"dubss/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentoRepository struct {
	mock.Mock
}

func (m *MockDocumentoRepository) Upsert(ctx context.Context, doc *model.Documento) (*model.Documento, string, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.Documento), args.String(1), args.Error(2)
}

func (m *MockDocumentoRepository) FindByID(ctx context.Context, id int64) (*model.Documento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Documento), args.Error(1)
}

func (m *MockDocumentoRepository) ListByTramite(ctx context.Context, idTramite int64) ([]model.Documento, error) {
	args := m.Called(ctx, idTramite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Documento), args.Error(1)
}

func (m *MockDocumentoRepository) ValidatedTipos(ctx context.Context, idTramite int64) (map[model.TipoDocumento]bool, error) {
	args := m.Called(ctx, idTramite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.TipoDocumento]bool), args.Error(1)
}

func (m *MockDocumentoRepository) CountByTramite(ctx context.Context, idTramite int64) (int, error) {
	args := m.Called(ctx, idTramite)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentoRepository) HasInvalid(ctx context.Context, idTramite int64) (bool, error) {
	args := m.Called(ctx, idTramite)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentoRepository) SetValidado(ctx context.Context, id int64, validado bool) (*model.Documento, error) {
	args := m.Called(ctx, id, validado)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Documento), args.Error(1)
}

func (m *MockDocumentoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
