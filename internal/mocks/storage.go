package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/ada/backend/internal/service"
)

// MockObjectStorage is a mock implementation of the ObjectStorage interface
type MockObjectStorage struct {
	mock.Mock
}

var _ service.ObjectStorage = (*MockObjectStorage)(nil)

func (m *MockObjectStorage) PutObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	args := m.Called(ctx, objectKey, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStorage) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}
