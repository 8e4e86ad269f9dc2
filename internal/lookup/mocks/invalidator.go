package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockInvalidator struct {
	mock.Mock
}

func NewMockInvalidator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvalidator {
	m := &MockInvalidator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInvalidator) Invalidate(ctx context.Context, kind string) error {
	return m.Called(ctx, kind).Error(0)
}
