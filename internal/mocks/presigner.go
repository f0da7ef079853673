package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPresigner is a mock implementation of service.ImagePresigner
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignPutURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockPresigner) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
