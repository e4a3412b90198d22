package location_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
)

var Module = fx.Provide(ProvideLocationService)

func ProvideLocationService(cfg config.Config, logger *zap.Logger) (services.LocationServiceInterface, error) {
	return services.NewLocationService(cfg.Maps.APIKey, logger.Named("location"))
}
