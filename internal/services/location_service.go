package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/utils"
)

const maxLocationSuggestions = 5

type LocationServiceInterface interface {
	Suggest(ctx context.Context, query string) ([]response_models.LocationSuggestion, error)
}

// LocationService suggests trip destinations with Google Places autocomplete.
type LocationService struct {
	client *maps.Client
	logger *zap.Logger
}

// NewLocationService returns a service that always fails with
// ErrLocationSearchDisabled when apiKey is empty.
func NewLocationService(apiKey string, logger *zap.Logger, opts ...maps.ClientOption) (LocationServiceInterface, error) {
	if apiKey == "" {
		logger.Info("GOOGLE_MAPS_API_KEY not set, location search disabled")
		return disabledLocationService{}, nil
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &LocationService{client: client, logger: logger}, nil
}

func (s *LocationService) Suggest(ctx context.Context, query string) ([]response_models.LocationSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: location query is required", utils.ErrInvalidInput)
	}

	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input:    query,
		Language: "en",
	})
	if err != nil {
		s.logger.Warn("places autocomplete failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", utils.ErrLocationSearchFailed, err)
	}

	suggestions := make([]response_models.LocationSuggestion, 0, maxLocationSuggestions)
	for _, p := range resp.Predictions {
		if len(suggestions) == maxLocationSuggestions {
			break
		}
		suggestions = append(suggestions, response_models.LocationSuggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions, nil
}

type disabledLocationService struct{}

func (disabledLocationService) Suggest(context.Context, string) ([]response_models.LocationSuggestion, error) {
	return nil, utils.ErrLocationSearchDisabled
}
