package prompts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExampleStore_EmbeddedExamplesAreValid(t *testing.T) {
	store, err := LoadExampleStore()
	require.NoError(t, err)

	for _, stage := range Stages() {
		examples := store.Examples(stage)
		require.NotEmpty(t, examples, stage)
		for _, ex := range examples {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(ex.Response), &doc))
			assert.Contains(t, doc, "location")
			assert.Contains(t, doc, "itinerary")
		}
	}

	for _, ex := range store.Examples(StageWeather) {
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(ex.Response), &doc))
		assert.NotEmpty(t, doc["typical_weather"])
	}
}

func TestExampleStore_ExamplesReturnsCopy(t *testing.T) {
	store, err := LoadExampleStore()
	require.NoError(t, err)

	examples := store.Examples(StageNewTrip)
	original := examples[0].Prompt
	examples[0].Prompt = "changed"

	assert.Equal(t, original, store.Examples(StageNewTrip)[0].Prompt)
}

func TestParseExampleStore_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing stage",
			yaml: `
stages:
  new_trip:
    - prompt: p
      response: '{}'
`,
		},
		{
			name: "invalid response json",
			yaml: `
stages:
  new_trip:
    - prompt: p
      response: 'Sure! {"a":1}'
  weather:
    - prompt: p
      response: '{}'
`,
		},
		{
			name: "empty prompt",
			yaml: `
stages:
  new_trip:
    - prompt: ""
      response: '{}'
  weather:
    - prompt: p
      response: '{}'
`,
		},
		{
			name: "not yaml",
			yaml: "stages: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExampleStore([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
