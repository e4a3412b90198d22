package controllers_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/api/controllers"
	"tripplanner/internal/config"
	"tripplanner/internal/services"
)

var Module = fx.Options(
	fx.Provide(ProvideItineraryController),
	fx.Provide(controllers.NewLocationController))

func ProvideItineraryController(
	pipeline services.ItineraryPipelineInterface,
	logger *zap.Logger,
	cfg config.Config,
) *controllers.ItineraryController {
	return controllers.NewItineraryController(pipeline, logger, cfg.Maps.APIKey != "")
}
