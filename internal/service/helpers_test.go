package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/storage"
)

type fakeGenerator struct {
	plan   *models.DietPlan
	err    error
	calls  int
	stores StoreLookup
}

func (f *fakeGenerator) Generate(ctx context.Context, profile models.Profile) (*models.DietPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	plan := *f.plan
	return &plan, nil
}

func (f *fakeGenerator) FindNearbyStores(ctx context.Context, lat, lng float64) StoreLookup {
	return f.stores
}

func sampleProfile() models.Profile {
	return models.Profile{
		Age:           30,
		Height:        170,
		Weight:        80,
		TargetWeight:  70,
		Gender:        models.GenderFemale,
		Goal:          models.GoalLoseWeight,
		ActivityLevel: models.ActivityModerate,
	}
}

func samplePlan() *models.DietPlan {
	days := []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"}
	plan := &models.DietPlan{
		Introduction: "Merhaba",
		Analysis: models.PlanAnalysis{
			MaintenanceCalories:    2200,
			TargetDailyCalories:    1700,
			DailyCalorieDifference: -500,
			EstimatedWeeksToGoal:   22,
			Message:                "10 kg için günlük 500 kcal açık",
		},
		WeeklyShoppingList:      []string{"Yulaf", "Yoğurt"},
		TotalWeeklyCostEstimate: 1500,
	}
	for _, day := range days {
		plan.WeeklyPlan = append(plan.WeeklyPlan, models.DailyPlan{
			Day:              day,
			TotalCalories:    1700,
			EstimatedCostTRY: 200,
			Meals: []models.Meal{{
				Type:        "Kahvaltı",
				Name:        "Yulaf lapası",
				Calories:    350,
				Recipe:      "Yulafı sütle pişirin.",
				Ingredients: []string{"50 g yulaf", "200 ml süt"},
			}},
		})
	}
	return plan
}

type testEnv struct {
	store     *storage.MemoryStore
	accounts  *AccountService
	sessions  *SessionService
	tracker   *WeightTracker
	generator *fakeGenerator
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     storage.NewMemoryStore(),
		generator: &fakeGenerator{plan: samplePlan()},
		now:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.accounts = NewAccountService(env.store)
	env.accounts.cost = bcrypt.MinCost
	env.sessions = NewSessionService(env.store, env.accounts, env.generator, "test-secret-test-secret-test-secret", 24*time.Hour)
	env.sessions.now = clock
	env.tracker = NewWeightTracker(env.store)
	env.tracker.now = clock
	return env
}
