package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/mocks"
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/storage"
)

type testServer struct {
	router    *gin.Engine
	store     *storage.MemoryStore
	generator *mocks.MockPlanGenerator
	objects   *mocks.MockObjectStorage
	sessions  *service.SessionService
	now       time.Time
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		store:     storage.NewMemoryStore(),
		generator: new(mocks.MockPlanGenerator),
		objects:   new(mocks.MockObjectStorage),
		now:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return ts.now }

	accounts := service.NewAccountService(ts.store)
	ts.sessions = service.NewSessionService(ts.store, accounts, ts.generator, "test-secret-test-secret-test-secret", 24*time.Hour).WithClock(clock)
	sessions := ts.sessions
	tracker := service.NewWeightTracker(ts.store).WithClock(clock)
	exporter := service.NewPlanExporter(ts.objects, 10*time.Minute)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/health", NewHealthHandler(ts.store).HealthCheck)

	v1 := router.Group("/api/v1")
	authHandler := NewAuthHandler(sessions)
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(sessions))
	authHandler.RegisterProtectedRoutes(protected)
	NewProfileHandler(sessions).RegisterRoutes(protected)
	NewPlanHandler(sessions, exporter, middleware.NewGenerationRateLimiter(nil, 2, time.Minute)).RegisterRoutes(protected)
	NewWeightHandler(tracker).RegisterRoutes(protected)
	NewStoreHandler(ts.generator).RegisterRoutes(protected)

	ts.router = router
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Ayşe",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
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

// login opens a new session for an account registered with register
func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON[AuthResponse](t, w).Token
}

// withPlan registers an account and submits the sample profile
func (ts *testServer) withPlan(t *testing.T, email string) string {
	t.Helper()

	token := ts.register(t, email)
	w := ts.do(t, http.MethodPut, "/api/v1/profile", token, sampleProfile())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return token
}
