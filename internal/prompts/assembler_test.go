package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/pkg/utils"
)

func newTestAssembler(t *testing.T) (*Assembler, *ExampleStore) {
	t.Helper()
	store, err := LoadExampleStore()
	require.NoError(t, err)
	a, err := NewAssembler(store)
	require.NoError(t, err)
	return a, store
}

func zionVariables() map[string]string {
	return map[string]string{
		"location":       "Zion National Park",
		"trip_start":     "2024-06-01",
		"trip_end":       "2024-06-02",
		"traveling_with": "solo",
		"lodging":        "lodges",
		"adventure":      "hiking",
		"trip_name":      "Zion Trip",
	}
}

func TestAssembler_Variables(t *testing.T) {
	a, _ := newTestAssembler(t)

	assert.Equal(t,
		[]string{"location", "trip_start", "trip_end", "traveling_with", "lodging", "adventure"},
		a.Variables(StageNewTrip))
	assert.Equal(t, []string{"input"}, a.Variables(StageWeather))
	assert.Nil(t, a.Variables(Stage("unknown")))
}

func TestRender_NewTripContainsExamplesInOrderThenSuffix(t *testing.T) {
	a, store := newTestAssembler(t)

	out, err := a.Render(StageNewTrip, zionVariables())
	require.NoError(t, err)

	last := -1
	for _, ex := range store.Examples(StageNewTrip) {
		rendered := ex.Prompt + "\n" + ex.Response
		idx := strings.Index(out[last+1:], rendered)
		require.NotEqual(t, -1, idx, "example missing or out of order")
		last += 1 + idx
	}

	suffix := "This trip is to Zion National Park between 2024-06-01 and 2024-06-02. " +
		"This person will be traveling solo and would like to stay in lodges. They want to hiking."
	assert.Contains(t, out, suffix)
	assert.True(t, strings.HasSuffix(out, "Output the itinerary as only JSON with no text before or after the JSON."))
	assert.Greater(t, strings.Index(out, suffix), last)
}

func TestRender_IsDeterministic(t *testing.T) {
	a, _ := newTestAssembler(t)

	first, err := a.Render(StageNewTrip, zionVariables())
	require.NoError(t, err)
	second, err := a.Render(StageNewTrip, zionVariables())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_WeatherEmbedsInputVerbatim(t *testing.T) {
	a, _ := newTestAssembler(t)

	docs := []string{
		`{"trip_name":"Zion Trip","location":"Zion National Park","itinerary":[]}`,
		`{"a": "<b>&amp;</b>", "quote": "\"{{.input}}\""}`,
		"{\n  \"spaced\": true\n}",
	}
	for _, doc := range docs {
		out, err := a.Render(StageWeather, map[string]string{"input": doc})
		require.NoError(t, err)
		assert.Contains(t, out, doc)
		assert.True(t, strings.HasSuffix(out, "after the JSON. "+doc))
	}
}

func TestRender_MissingVariable(t *testing.T) {
	a, _ := newTestAssembler(t)

	vars := zionVariables()
	delete(vars, "lodging")

	_, err := a.Render(StageNewTrip, vars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrMissingVariable))

	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "lodging", missing.Name)
	assert.Equal(t, StageNewTrip, missing.Stage)

	_, err = a.Render(StageWeather, map[string]string{})
	assert.ErrorIs(t, err, utils.ErrMissingVariable)
}

func TestRender_UnknownStage(t *testing.T) {
	a, _ := newTestAssembler(t)

	_, err := a.Render(Stage("packing_list"), map[string]string{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, utils.ErrMissingVariable))
}
