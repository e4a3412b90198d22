package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/prompts"
	"tripplanner/pkg/utils"
)

const (
	fieldLocation       = "location"
	fieldTypicalWeather = "typical_weather"
)

// Fields the model may leave out of a stage-1 document.
var optionalItineraryFields = map[string]bool{
	"trip_name":         true,
	fieldTypicalWeather: true,
	"traveling_with":    true,
	"lodging":           true,
	"adventure":         true,
}

// SchemaViolationError lists every constraint a model document broke.
type SchemaViolationError struct {
	Stage      prompts.Stage
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s output violates the itinerary schema: %s", e.Stage, strings.Join(e.Violations, "; "))
}

func (e *SchemaViolationError) Unwrap() error {
	return utils.ErrMalformedModelOutput
}

type SchemaValidatorInterface interface {
	// ValidateItinerary checks a stage-1 document against the request it was generated for.
	ValidateItinerary(req request_models.TripRequest, doc *response_models.ItineraryDocument) error
	// ValidateWeather checks that the stage-2 document is the stage-1 document
	// plus typical_weather placed right after location.
	ValidateWeather(itinerary, weather *response_models.ItineraryDocument) error
}

type SchemaValidator struct{}

func NewSchemaValidator() SchemaValidatorInterface {
	return &SchemaValidator{}
}

type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) err(stage prompts.Stage) error {
	if len(v) == 0 {
		return nil
	}
	return &SchemaViolationError{Stage: stage, Violations: v}
}

func (s *SchemaValidator) ValidateItinerary(req request_models.TripRequest, doc *response_models.ItineraryDocument) error {
	var v violations

	obj, ok := doc.Object()
	if !ok {
		v.add("document is not a JSON object")
		return v.err(prompts.StageNewTrip)
	}
	checkDuplicateKeys(&v, doc.Keys)

	var it response_models.Itinerary
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   &it,
		TagName:  "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("building itinerary decoder: %w", err)
	}
	if err := decoder.Decode(obj); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			v = append(v, merr.Errors...)
		} else {
			v.add("%v", err)
		}
		return v.err(prompts.StageNewTrip)
	}

	sort.Strings(md.Unset)
	for _, name := range md.Unset {
		if !optionalItineraryFields[name] {
			v.add("missing field %q", name)
		}
	}
	if len(v) > 0 {
		return v.err(prompts.StageNewTrip)
	}

	if strings.TrimSpace(it.Location) == "" {
		v.add("location is empty")
	}
	checkDate(&v, "trip_start", it.TripStart, utils.FormatDate(req.TripStart))
	checkDate(&v, "trip_end", it.TripEnd, utils.FormatDate(req.TripEnd))

	want := req.DayCount()
	if len(it.Days) != want {
		v.add("itinerary has %d days, want %d", len(it.Days), want)
	}
	for i, day := range it.Days {
		if day.Day != strconv.Itoa(i+1) {
			v.add("itinerary[%d].day is %q, want %q", i, day.Day, strconv.Itoa(i+1))
		}
		checkDate(&v, fmt.Sprintf("itinerary[%d].date", i), day.Date, utils.FormatDate(utils.AddDays(req.TripStart, i)))
		for _, part := range []struct{ name, value string }{
			{"morning", day.Morning},
			{"afternoon", day.Afternoon},
			{"evening", day.Evening},
		} {
			if strings.TrimSpace(part.value) == "" {
				v.add("itinerary[%d].%s is empty", i, part.name)
			}
		}
	}

	return v.err(prompts.StageNewTrip)
}

func (s *SchemaValidator) ValidateWeather(itinerary, weather *response_models.ItineraryDocument) error {
	var v violations

	before, _ := itinerary.Object()
	after, ok := weather.Object()
	if !ok {
		v.add("document is not a JSON object")
		return v.err(prompts.StageWeather)
	}
	checkDuplicateKeys(&v, weather.Keys)

	switch tw := after[fieldTypicalWeather].(type) {
	case nil:
		v.add("missing field %q", fieldTypicalWeather)
	case string:
		if strings.TrimSpace(tw) == "" {
			v.add("typical_weather is empty")
		}
	default:
		v.add("typical_weather is %T, want string", tw)
	}

	loc, tw := weather.KeyIndex(fieldLocation), weather.KeyIndex(fieldTypicalWeather)
	if loc >= 0 && tw >= 0 && tw != loc+1 {
		v.add("typical_weather is at position %d, want %d right after location", tw, loc+1)
	}

	for _, key := range itinerary.Keys {
		value, ok := after[key]
		switch {
		case !ok:
			v.add("field %q was dropped", key)
		case !reflect.DeepEqual(before[key], value):
			v.add("field %q was changed", key)
		}
	}
	for _, key := range weather.Keys {
		if _, ok := before[key]; !ok && key != fieldTypicalWeather {
			v.add("unexpected field %q", key)
		}
	}

	return v.err(prompts.StageWeather)
}

func checkDuplicateKeys(v *violations, keys []string) {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			v.add("duplicate field %q", k)
		}
		seen[k] = true
	}
}

func checkDate(v *violations, field, got, want string) {
	if _, err := utils.ParseDate(got); err != nil {
		v.add("%s %q is not a YYYY-MM-DD date", field, got)
		return
	}
	if got != want {
		v.add("%s is %s, want %s", field, got, want)
	}
}
