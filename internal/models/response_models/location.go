package response_models

// LocationSuggestion is one autocomplete match for the trip location field.
type LocationSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}
