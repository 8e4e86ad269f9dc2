package mocks

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/pkg/search"
	"github.com/stretchr/testify/mock"
)

type MockSearcher struct {
	mock.Mock
}

func NewMockSearcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSearcher {
	m := &MockSearcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSearcher) Search(ctx context.Context, index string, query map[string]any) (*search.SearchResponse, error) {
	args := m.Called(ctx, index, query)
	res, _ := args.Get(0).(*search.SearchResponse)
	return res, args.Error(1)
}
