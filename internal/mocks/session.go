package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
)

// MockSessionService is a mock implementation of the ISessionService interface
type MockSessionService struct {
	mock.Mock
}

var _ service.ISessionService = (*MockSessionService)(nil)

func (m *MockSessionService) Register(ctx context.Context, name, email, password string) (*service.Session, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*service.Session), args.String(1), args.Error(2)
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (*service.Session, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*service.Session), args.String(1), args.Error(2)
}

func (m *MockSessionService) Restore(ctx context.Context, token string) (*service.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, sess *service.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockSessionService) SubmitProfile(ctx context.Context, sess *service.Session, profile models.Profile) error {
	args := m.Called(ctx, sess, profile)
	return args.Error(0)
}

func (m *MockSessionService) RegeneratePlan(ctx context.Context, sess *service.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockSessionService) Reset(ctx context.Context, sess *service.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}
