package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
)

// MockPlanGenerator is a mock implementation of the PlanGenerator interface
type MockPlanGenerator struct {
	mock.Mock
}

var _ service.PlanGenerator = (*MockPlanGenerator)(nil)

func (m *MockPlanGenerator) Generate(ctx context.Context, profile models.Profile) (*models.DietPlan, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DietPlan), args.Error(1)
}

func (m *MockPlanGenerator) FindNearbyStores(ctx context.Context, lat, lng float64) service.StoreLookup {
	args := m.Called(ctx, lat, lng)
	return args.Get(0).(service.StoreLookup)
}
