package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/internal/service"
)

func TestWeightOverview(t *testing.T) {
	ts := setupTestServer(t)
	ts.generator.On("Generate", mock.Anything, mock.Anything).Return(samplePlan(), nil)

	token := ts.register(t, "ayse@example.com")
	w := ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	token = ts.withPlan(t, "fatma@example.com")
	w = ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	overview := decodeJSON[service.WeightOverview](t, w)
	require.Len(t, overview.History, 1)
	assert.Equal(t, 80.0, overview.History[0].Weight)
	assert.Equal(t, 80.0, overview.StartWeight)
	assert.Equal(t, 70.0, overview.TargetWeight)
	assert.Equal(t, 0, overview.ProgressRounded)
	assert.Nil(t, overview.Reminder)
}

func TestRecordWeight(t *testing.T) {
	ts := setupTestServer(t)
	ts.generator.On("Generate", mock.Anything, mock.Anything).Return(samplePlan(), nil)
	token := ts.withPlan(t, "ayse@example.com")

	ts.now = ts.now.Add(24 * time.Hour)
	w := ts.do(t, http.MethodPost, "/api/v1/weight", token, map[string]any{"weight": "77,5"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeJSON[service.RecordResult](t, w)
	assert.True(t, result.Recorded)
	require.NotNil(t, result.Entry)
	assert.Equal(t, 77.5, result.Entry.Weight)
	assert.Equal(t, service.TrendDown, result.Entry.Trend)
	require.NotNil(t, result.Notification)
	assert.Equal(t, service.NotificationInfo, result.Notification.Kind)
	assert.Equal(t, "Hedefinize 7.5 kg kaldı. Devam edin!", result.Notification.Text)

	w = ts.do(t, http.MethodPost, "/api/v1/weight", token, map[string]any{"weight": 69.8})
	require.Equal(t, http.StatusOK, w.Code)
	result = decodeJSON[service.RecordResult](t, w)
	assert.Equal(t, service.NotificationSuccess, result.Notification.Kind)
	assert.Equal(t, service.MsgGoalReached, result.Notification.Text)

	w = ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decodeJSON[service.WeightOverview](t, w)
	require.Len(t, overview.History, 3)
	assert.Equal(t, 69.8, overview.History[0].Weight)
	assert.Equal(t, 80.0, overview.History[2].Weight)
	assert.Equal(t, 100, overview.ProgressRounded)

	// the profile weight follows the latest entry
	w = ts.do(t, http.MethodGet, "/api/v1/session", token, nil)
	view := decodeJSON[service.SessionView](t, w)
	assert.Equal(t, 69.8, view.Profile.Weight)
}

func TestRecordWeightIgnoresInvalidInput(t *testing.T) {
	ts := setupTestServer(t)
	ts.generator.On("Generate", mock.Anything, mock.Anything).Return(samplePlan(), nil)
	token := ts.withPlan(t, "ayse@example.com")

	inputs := []any{"", "   ", "abc", "0", "-5", nil}
	for _, input := range inputs {
		w := ts.do(t, http.MethodPost, "/api/v1/weight", token, map[string]any{"weight": input})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, decodeJSON[service.RecordResult](t, w).Recorded)
	}

	w := ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	overview := decodeJSON[service.WeightOverview](t, w)
	assert.Len(t, overview.History, 1)
}

func TestWeighInReminder(t *testing.T) {
	ts := setupTestServer(t)
	ts.generator.On("Generate", mock.Anything, mock.Anything).Return(samplePlan(), nil)
	token := ts.withPlan(t, "ayse@example.com")

	w := ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	ts.now = ts.now.Add(7 * 24 * time.Hour)
	token = ts.login(t, "ayse@example.com")
	w = ts.do(t, http.MethodGet, "/api/v1/weight", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	overview := decodeJSON[service.WeightOverview](t, w)
	require.NotNil(t, overview.Reminder)
	assert.Equal(t, service.NotificationWarning, overview.Reminder.Kind)
	assert.Contains(t, overview.Reminder.Text, "7 gün")
}
