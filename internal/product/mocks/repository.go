package mocks

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func NewMockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) BulkCreate(ctx context.Context, products []model.Product) (int, error) {
	args := m.Called(ctx, products)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Int(1), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	return m.Called(ctx, id, price).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *MockRepository) FindByProductName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockRepository) FindByKey(ctx context.Context, key model.ProductKey) (*model.Product, error) {
	args := m.Called(ctx, key)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context, highValue decimal.Decimal) (*model.ProductStats, error) {
	args := m.Called(ctx, highValue)
	s, _ := args.Get(0).(*model.ProductStats)
	return s, args.Error(1)
}

func (m *MockRepository) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	args := m.Called(ctx, query, limit)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *MockRepository) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, limit)
	a, _ := args.Get(0).([]model.Activity)
	return a, args.Error(1)
}
