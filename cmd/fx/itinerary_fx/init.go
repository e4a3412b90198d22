package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/prompts"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	services.NewSchemaValidator,
	ProvideItineraryPipeline)

func ProvideItineraryPipeline(
	assembler *prompts.Assembler,
	client utils.CompletionClient,
	validator services.SchemaValidatorInterface,
	logger *zap.Logger,
	cfg config.Config,
) services.ItineraryPipelineInterface {
	return services.NewItineraryPipeline(assembler, client, validator, logger.Named("pipeline"), services.PipelineConfig{
		ItineraryTimeout: cfg.Pipeline.ItineraryTimeout,
		WeatherTimeout:   cfg.Pipeline.WeatherTimeout,
		MaxInFlight:      cfg.LLM.MaxInFlight,
	})
}
