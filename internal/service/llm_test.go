package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/internal/models"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(GeminiOptions{APIKey: "test-key", APIURL: server.URL, Model: "gemini-test"})
	require.NoError(t, err)
	return client
}

func textResponse(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestNewGeminiClient(t *testing.T) {
	t.Run("should fail without API key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY_FILE", "")

		client, err := NewGeminiClient(GeminiOptions{})
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	})

	t.Run("should read the key file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gemini_api_key")
		require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
		t.Setenv("GEMINI_API_KEY_FILE", path)

		client, err := NewGeminiClient(GeminiOptions{})
		require.NoError(t, err)
		assert.Equal(t, "from-file", client.apiKey)
		assert.Equal(t, "gemini-2.5-flash", client.model)
	})
}

func TestGeminiClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("should send the schema and decode the plan", func(t *testing.T) {
		planJSON, err := json.Marshal(samplePlan())
		require.NoError(t, err)

		var captured Request
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write(textResponse(t, "```json\n"+string(planJSON)+"\n```"))
		})

		plan, err := client.Generate(ctx, sampleProfile())
		require.NoError(t, err)
		assert.Len(t, plan.WeeklyPlan, 7)
		assert.Nil(t, plan.Timestamp)

		require.NotNil(t, captured.GenerationConfig)
		assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
		require.NotNil(t, captured.GenerationConfig.ResponseSchema)
		assert.Contains(t, captured.GenerationConfig.ResponseSchema.Required, "weeklyPlan")
		assert.Equal(t, systemInstruction, captured.SystemInstruction.Parts[0].Text)
		assert.Contains(t, captured.Contents[0].Parts[0].Text, "VKİ: 27.68")
	})

	t.Run("should fail on a server error", func(t *testing.T) {
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota", http.StatusTooManyRequests)
		})

		_, err := client.Generate(ctx, sampleProfile())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.NotErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("should fail on text that is not JSON", func(t *testing.T) {
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(textResponse(t, "Üzgünüm, yardımcı olamam."))
		})

		_, err := client.Generate(ctx, sampleProfile())
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("should reject a plan with the wrong shape", func(t *testing.T) {
		plan := samplePlan()
		plan.WeeklyPlan = plan.WeeklyPlan[:3]
		planJSON, err := json.Marshal(plan)
		require.NoError(t, err)

		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(textResponse(t, string(planJSON)))
		})

		_, err = client.Generate(ctx, sampleProfile())
		var mismatch *SchemaMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("should fail without candidates", func(t *testing.T) {
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := client.Generate(ctx, sampleProfile())
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestGeminiClient_FindNearbyStores(t *testing.T) {
	ctx := context.Background()

	t.Run("should extract maps chunks", func(t *testing.T) {
		var captured Request
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"..."}]},"groundingMetadata":{"groundingChunks":[
				{"maps":{"title":"Migros","uri":"https://maps.google.com/?cid=1"}},
				{"web":{"title":"blog","uri":"https://example.com"}},
				{"maps":{"uri":"https://maps.google.com/?cid=2"}}
			]}}]}`))
		})

		result := client.FindNearbyStores(ctx, 41.01, 28.97)
		assert.Empty(t, result.Message)
		assert.Equal(t, []models.Place{
			{Title: "Migros", URI: "https://maps.google.com/?cid=1"},
			{Title: MsgUnknownPlace, URI: "https://maps.google.com/?cid=2"},
		}, result.Places)

		require.NotNil(t, captured.ToolConfig)
		assert.Equal(t, 41.01, captured.ToolConfig.RetrievalConfig.LatLng.Latitude)
		require.Len(t, captured.Tools, 1)
		assert.NotNil(t, captured.Tools[0].GoogleMaps)
	})

	t.Run("should degrade to an empty list on failure", func(t *testing.T) {
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		result := client.FindNearbyStores(ctx, 41.01, 28.97)
		assert.Empty(t, result.Places)
		assert.NotNil(t, result.Places)
		assert.Equal(t, MsgStoreLookupFailed, result.Message)
	})

	t.Run("should return an empty list without grounding", func(t *testing.T) {
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(textResponse(t, "Yakında market yok."))
		})

		result := client.FindNearbyStores(ctx, 41.01, 28.97)
		assert.Empty(t, result.Places)
		assert.Empty(t, result.Message)
	})

	t.Run("should not call the service for invalid coordinates", func(t *testing.T) {
		called := false
		client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		result := client.FindNearbyStores(ctx, 120, 28.97)
		assert.False(t, called)
		assert.Equal(t, MsgGeolocationMissing, result.Message)
	})
}

func TestBuildPlanPrompt(t *testing.T) {
	profile := sampleProfile()
	prompt := BuildPlanPrompt(profile)
	assert.Contains(t, prompt, "- Yaş: 30")
	assert.Contains(t, prompt, "- Hedef Kilo: 70 kg (Fark: 10.0 kg)")
	assert.NotContains(t, prompt, "Kısıtlamalar")

	profile.DietaryRestrictions = "Glutensiz"
	assert.Contains(t, BuildPlanPrompt(profile), "- Kısıtlamalar: Glutensiz")
}
