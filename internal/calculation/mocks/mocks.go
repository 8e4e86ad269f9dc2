package mocks

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockRepository struct {
	mock.Mock
}

func NewMockRepository(t testingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.PriceCalculation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.PriceCalculation)
	return c, args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, withExcel bool) ([]model.PriceCalculation, error) {
	args := m.Called(ctx, withExcel)
	c, _ := args.Get(0).([]model.PriceCalculation)
	return c, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, calc *model.PriceCalculation, withExcel bool) error {
	return m.Called(ctx, calc, withExcel).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, calc *model.PriceCalculation, withExcel bool) error {
	return m.Called(ctx, calc, withExcel).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *MockRepository) BulkCreate(ctx context.Context, calcs []model.PriceCalculation, withExcel bool) (int, error) {
	args := m.Called(ctx, calcs, withExcel)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) HasExcelCapacityColumns(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockMasterLookup struct {
	mock.Mock
}

func NewMockMasterLookup(t testingT) *MockMasterLookup {
	m := &MockMasterLookup{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMasterLookup) FindProduct(ctx context.Context, productName string) (*model.Product, error) {
	args := m.Called(ctx, productName)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockMasterLookup) FindSparePart(ctx context.Context, productName string) (*model.SparePart, error) {
	args := m.Called(ctx, productName)
	p, _ := args.Get(0).(*model.SparePart)
	return p, args.Error(1)
}
