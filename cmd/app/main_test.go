package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"tripplanner/cmd/fx/controllers_fx"
	"tripplanner/cmd/fx/location_fx"
	"tripplanner/internal/api"
)

const (
	zionItinerary = `{"trip_name":"Zion Trip","location":"Zion National Park","trip_start":"2024-06-01","trip_end":"2024-06-02","traveling_with":"solo","lodging":"lodges","adventure":"hiking","itinerary":[{"day":"1","date":"2024-06-01","morning":"Arrive","afternoon":"Riverside Walk","evening":"Dinner at Zion Lodge"},{"day":"2","date":"2024-06-02","morning":"Angels Landing","afternoon":"Shuttle tour","evening":"Stargazing"}]}`
	zionWeather   = `{"trip_name":"Zion Trip","location":"Zion National Park","typical_weather":"Hot and dry.","trip_start":"2024-06-01","trip_end":"2024-06-02","traveling_with":"solo","lodging":"lodges","adventure":"hiking","itinerary":[{"day":"1","date":"2024-06-01","morning":"Arrive","afternoon":"Riverside Walk","evening":"Dinner at Zion Lodge"},{"day":"2","date":"2024-06-02","morning":"Angels Landing","afternoon":"Shuttle tour","evening":"Stargazing"}]}`
)

func setTestEnv(t *testing.T, openAIURL string) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", openAIURL)
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("LLM_MAX_OUTPUT_TOKENS", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("LLM_MAX_IN_FLIGHT", "")
	t.Setenv("ITINERARY_TIMEOUT", "")
	t.Setenv("WEATHER_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "app.log"))
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
}

func TestServeGraphIsComplete(t *testing.T) {
	setTestEnv(t, "http://127.0.0.1:1/v1")

	err := fx.ValidateApp(
		coreModules(),
		location_fx.Module,
		controllers_fx.Module,
		fx.Provide(api.NewRouter),
		fx.Invoke(StartServer),
	)
	assert.NoError(t, err)
}

func TestPlanCommand(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		prompt, _ := req.Prompt.(string)

		text := zionItinerary
		if calls.Add(1) == 2 {
			assert.True(t, strings.HasSuffix(prompt, zionItinerary))
			text = zionWeather
		}
		assert.Equal(t, 2048, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.CompletionResponse{
			Choices: []openai.CompletionChoice{{Text: text, FinishReason: "stop"}},
		})
	}))
	t.Cleanup(srv.Close)
	setTestEnv(t, srv.URL+"/v1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"plan",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--location", "Zion National Park",
		"--start", "2024-06-01",
		"--end", "2024-06-02",
		"--with", "solo",
		"--lodging", "lodges",
		"--adventure", "hiking",
		"--name", "Zion Trip",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, int32(2), calls.Load())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "Hot and dry.", doc["typical_weather"])

	text := out.String()
	assert.Contains(t, text, "\n  \"location\": \"Zion National Park\",\n  \"typical_weather\"")
}
