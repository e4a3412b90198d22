package response_models

import (
	"encoding/json"
	"fmt"
)

// ItineraryDocument is a JSON document returned by the completion model.
// Raw holds the model's bytes, compacted but otherwise untouched, so key order
// and string escapes survive serialization back into the next prompt.
type ItineraryDocument struct {
	Raw   json.RawMessage
	Value any
	// Keys lists the top-level object keys in document order. It is empty when
	// the document is not an object.
	Keys []string
}

func (d *ItineraryDocument) MarshalJSON() ([]byte, error) {
	if d == nil || len(d.Raw) == 0 {
		return []byte("null"), nil
	}
	return d.Raw, nil
}

// Text is the document as JSON text.
func (d *ItineraryDocument) Text() string {
	return string(d.Raw)
}

// Object returns the document as a JSON object, if it is one.
func (d *ItineraryDocument) Object() (map[string]any, bool) {
	obj, ok := d.Value.(map[string]any)
	return obj, ok
}

// KeyIndex returns the position of key among the top-level keys, or -1.
func (d *ItineraryDocument) KeyIndex(key string) int {
	for i, k := range d.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Itinerary decodes the typed view used by templates and the CLI.
func (d *ItineraryDocument) Itinerary() (*Itinerary, error) {
	var it Itinerary
	if err := json.Unmarshal(d.Raw, &it); err != nil {
		return nil, fmt.Errorf("decoding itinerary: %w", err)
	}
	return &it, nil
}

type Itinerary struct {
	TripName       string         `json:"trip_name" mapstructure:"trip_name"`
	Location       string         `json:"location" mapstructure:"location"`
	TypicalWeather string         `json:"typical_weather,omitempty" mapstructure:"typical_weather"`
	TripStart      string         `json:"trip_start" mapstructure:"trip_start"`
	TripEnd        string         `json:"trip_end" mapstructure:"trip_end"`
	TravelingWith  string         `json:"traveling_with" mapstructure:"traveling_with"`
	Lodging        string         `json:"lodging" mapstructure:"lodging"`
	Adventure      string         `json:"adventure" mapstructure:"adventure"`
	Days           []ItineraryDay `json:"itinerary" mapstructure:"itinerary"`
}

type ItineraryDay struct {
	Day       string `json:"day" mapstructure:"day"`
	Date      string `json:"date" mapstructure:"date"`
	Morning   string `json:"morning" mapstructure:"morning"`
	Afternoon string `json:"afternoon" mapstructure:"afternoon"`
	Evening   string `json:"evening" mapstructure:"evening"`
}
