package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/prompts"
	"tripplanner/pkg/utils"
)

type PipelineState string

const (
	StateCollectingInput     PipelineState = "COLLECTING_INPUT"
	StateGeneratingItinerary PipelineState = "GENERATING_ITINERARY"
	StateItineraryReady      PipelineState = "ITINERARY_READY"
	StateAddingWeather       PipelineState = "ADDING_WEATHER"
	StateComplete            PipelineState = "COMPLETE"
	StateFailed              PipelineState = "FAILED"
)

// PipelineError is returned when a run ends in FAILED. State is the state the
// run was in when the failure happened.
type PipelineError struct {
	State PipelineState
	Stage prompts.Stage
	Err   error
}

func (e *PipelineError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("itinerary pipeline failed in %s: %v", e.State, e.Err)
	}
	return fmt.Sprintf("itinerary pipeline failed in %s (%s stage): %v", e.State, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

type PipelineConfig struct {
	ItineraryTimeout time.Duration
	WeatherTimeout   time.Duration
	// MaxInFlight caps concurrent completion calls across all runs. Zero
	// disables the limit.
	MaxInFlight int64
}

type ItineraryPipelineInterface interface {
	// GenerateItinerary runs both completion stages and returns the final
	// document. On failure it returns a *PipelineError and no document.
	GenerateItinerary(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryDocument, error)
}

type ItineraryPipeline struct {
	assembler *prompts.Assembler
	client    utils.CompletionClient
	validator SchemaValidatorInterface
	logger    *zap.Logger
	config    PipelineConfig
	limiter   *semaphore.Weighted
}

func NewItineraryPipeline(
	assembler *prompts.Assembler,
	client utils.CompletionClient,
	validator SchemaValidatorInterface,
	logger *zap.Logger,
	config PipelineConfig,
) ItineraryPipelineInterface {
	p := &ItineraryPipeline{
		assembler: assembler,
		client:    client,
		validator: validator,
		logger:    logger,
		config:    config,
	}
	if config.MaxInFlight > 0 {
		p.limiter = semaphore.NewWeighted(config.MaxInFlight)
	}
	return p
}

type pipelineRun struct {
	state  PipelineState
	stage  prompts.Stage
	logger *zap.Logger
}

func (r *pipelineRun) transition(next PipelineState) {
	r.logger.Info("pipeline state changed",
		zap.String("from", string(r.state)),
		zap.String("to", string(next)))
	r.state = next
}

func (r *pipelineRun) fail(err error) error {
	perr := &PipelineError{State: r.state, Stage: r.stage, Err: err}
	r.logger.Warn("pipeline failed",
		zap.String("from", string(r.state)),
		zap.String("to", string(StateFailed)),
		zap.Bool("retryable", utils.IsRetryable(err)),
		zap.Error(err))
	r.state = StateFailed
	return perr
}

func (p *ItineraryPipeline) GenerateItinerary(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryDocument, error) {
	run := &pipelineRun{
		state: StateCollectingInput,
		logger: p.logger.With(
			zap.String("trace_id", utils.TraceIDFromContext(ctx)),
			zap.String("location", req.Location)),
	}

	if err := req.Validate(); err != nil {
		return nil, run.fail(err)
	}

	run.stage = prompts.StageNewTrip
	run.transition(StateGeneratingItinerary)
	itinerary, err := p.runStage(ctx, run, req.PromptVariables(), p.config.ItineraryTimeout)
	if err != nil {
		return nil, run.fail(err)
	}
	if err := p.validator.ValidateItinerary(req, itinerary); err != nil {
		return nil, run.fail(err)
	}
	run.transition(StateItineraryReady)

	run.stage = prompts.StageWeather
	run.transition(StateAddingWeather)
	weather, err := p.runStage(ctx, run, map[string]string{"input": itinerary.Text()}, p.config.WeatherTimeout)
	if err != nil {
		return nil, run.fail(err)
	}
	if err := p.validator.ValidateWeather(itinerary, weather); err != nil {
		return nil, run.fail(err)
	}
	run.transition(StateComplete)

	return weather, nil
}

// runStage renders the prompt of the current stage, sends it and normalizes
// the answer.
func (p *ItineraryPipeline) runStage(ctx context.Context, run *pipelineRun, vars map[string]string, timeout time.Duration) (*response_models.ItineraryDocument, error) {
	prompt, err := p.assembler.Render(run.stage, vars)
	if err != nil {
		return nil, err
	}
	run.logger.Debug("prompt assembled", zap.Int("prompt_bytes", len(prompt)))

	start := time.Now()
	raw, err := p.complete(ctx, prompt, timeout)
	if err != nil {
		return nil, err
	}
	run.logger.Debug("completion received",
		zap.Duration("latency", time.Since(start)),
		zap.String("raw", raw))

	doc, err := NormalizeOutput(raw)
	if err != nil {
		return nil, err
	}
	run.logger.Info("model output normalized", zap.ByteString("document", doc.Raw))
	return doc, nil
}

func (p *ItineraryPipeline) complete(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Acquire(ctx, 1); err != nil {
			return "", fmt.Errorf("%w: waiting for a completion slot: %w", utils.ErrCompletionTransport, err)
		}
		defer p.limiter.Release(1)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := p.client.Complete(ctx, prompt)
	if err != nil {
		if !errors.Is(err, utils.ErrCompletionTransport) {
			err = fmt.Errorf("%w: %w", utils.ErrCompletionTransport, err)
		}
		return "", err
	}
	return raw, nil
}
