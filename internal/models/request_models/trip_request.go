package request_models

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/pkg/utils"
)

const listSeparator = ", "

// TripRequest is the validated user input for one itinerary.
type TripRequest struct {
	Location      string
	TripStart     time.Time
	TripEnd       time.Time
	TravelingWith []string
	Lodging       []string
	Adventure     []string
	TripName      string
}

func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("%w: location is required", utils.ErrInvalidInput)
	}
	if r.TripStart.IsZero() || r.TripEnd.IsZero() {
		return fmt.Errorf("%w: trip start and end dates are required", utils.ErrInvalidInput)
	}
	if r.TripEnd.Before(r.TripStart) {
		return fmt.Errorf("%w: trip end %s is before trip start %s",
			utils.ErrInvalidInput, utils.FormatDate(r.TripEnd), utils.FormatDate(r.TripStart))
	}
	return nil
}

// DayCount is the number of calendar days the trip covers, both ends included.
func (r TripRequest) DayCount() int {
	return utils.InclusiveDayCount(r.TripStart, r.TripEnd)
}

// PromptVariables returns the new-trip prompt variables. Multi-valued fields
// are joined with ", ".
func (r TripRequest) PromptVariables() map[string]string {
	return map[string]string{
		"location":       r.Location,
		"trip_start":     utils.FormatDate(r.TripStart),
		"trip_end":       utils.FormatDate(r.TripEnd),
		"traveling_with": strings.Join(r.TravelingWith, listSeparator),
		"lodging":        strings.Join(r.Lodging, listSeparator),
		"adventure":      strings.Join(r.Adventure, listSeparator),
		"trip_name":      r.TripName,
	}
}

// PlanTripForm is the raw plan-trip form. Field names match the HTML form so
// the same struct binds the page post and the JSON API.
type PlanTripForm struct {
	Location      string   `form:"location-search" json:"location" binding:"required"`
	TripStart     string   `form:"trip-start" json:"trip_start" binding:"required,datetime=2006-01-02"`
	TripEnd       string   `form:"trip-end" json:"trip_end" binding:"required,datetime=2006-01-02"`
	TravelingWith []string `form:"traveling-with" json:"traveling_with"`
	Lodging       []string `form:"lodging" json:"lodging"`
	Adventure     []string `form:"adventure" json:"adventure"`
	TripName      string   `form:"trip-name" json:"trip_name"`
}

func (f PlanTripForm) ToTripRequest() (TripRequest, error) {
	start, err := utils.ParseDate(f.TripStart)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: trip-start: %v", utils.ErrInvalidInput, err)
	}
	end, err := utils.ParseDate(f.TripEnd)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: trip-end: %v", utils.ErrInvalidInput, err)
	}

	req := TripRequest{
		Location:      strings.TrimSpace(f.Location),
		TripStart:     start,
		TripEnd:       end,
		TravelingWith: compact(f.TravelingWith),
		Lodging:       compact(f.Lodging),
		Adventure:     compact(f.Adventure),
		TripName:      strings.TrimSpace(f.TripName),
	}
	if err := req.Validate(); err != nil {
		return TripRequest{}, err
	}
	return req, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
