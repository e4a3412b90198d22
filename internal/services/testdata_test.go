package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/utils"
)

const zionItinerary = `{"trip_name":"Zion Trip","location":"Zion National Park","trip_start":"2024-06-01","trip_end":"2024-06-02","traveling_with":"solo","lodging":"lodges","adventure":"hiking","itinerary":[{"day":"1","date":"2024-06-01","morning":"Arrive at Zion National Park","afternoon":"Hike the Riverside Walk","evening":"Dinner at Zion Lodge"},{"day":"2","date":"2024-06-02","morning":"Hike Angels Landing","afternoon":"Shuttle tour of Zion Canyon","evening":"Stargazing at the lodge"}]}`

const zionWeather = `{"trip_name":"Zion Trip","location":"Zion National Park","typical_weather":"In early June, Zion National Park is hot and dry with daytime highs around 90 degrees F (32 degrees C) and cool nights.","trip_start":"2024-06-01","trip_end":"2024-06-02","traveling_with":"solo","lodging":"lodges","adventure":"hiking","itinerary":[{"day":"1","date":"2024-06-01","morning":"Arrive at Zion National Park","afternoon":"Hike the Riverside Walk","evening":"Dinner at Zion Lodge"},{"day":"2","date":"2024-06-02","morning":"Hike Angels Landing","afternoon":"Shuttle tour of Zion Canyon","evening":"Stargazing at the lodge"}]}`

func zionRequest(t *testing.T) request_models.TripRequest {
	t.Helper()
	start, err := utils.ParseDate("2024-06-01")
	require.NoError(t, err)
	end, err := utils.ParseDate("2024-06-02")
	require.NoError(t, err)
	return request_models.TripRequest{
		Location:      "Zion National Park",
		TripStart:     start,
		TripEnd:       end,
		TravelingWith: []string{"solo"},
		Lodging:       []string{"lodges"},
		Adventure:     []string{"hiking"},
		TripName:      "Zion Trip",
	}
}

type scriptedResponse struct {
	text string
	err  error
}

// scriptedClient answers calls in order and records every prompt it receives.
type scriptedClient struct {
	mu        sync.Mutex
	responses []scriptedResponse
	prompts   []string
}

func (c *scriptedClient) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	i := len(c.prompts) - 1
	if i >= len(c.responses) {
		return "", fmt.Errorf("%w: unexpected call %d", utils.ErrCompletionTransport, i+1)
	}
	return c.responses[i].text, c.responses[i].err
}

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// isWeatherPrompt tells the two stages apart by the weather suffix, which
// ends with the embedded stage-1 document.
func isWeatherPrompt(prompt string) bool {
	return !strings.HasSuffix(prompt, "with no text before or after the JSON.")
}
