package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
)

var (
	planForm  request_models.PlanTripForm
	planColor bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate one itinerary and print it as JSON",
	Example: `  tripplanner plan --location "Zion National Park" --start 2024-06-01 --end 2024-06-02 \
    --with solo --lodging lodges --adventure hiking --name "Zion Trip"`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planForm.Location, "location", "", "Trip destination")
	f.StringVar(&planForm.TripStart, "start", "", "First day of the trip (YYYY-MM-DD)")
	f.StringVar(&planForm.TripEnd, "end", "", "Last day of the trip (YYYY-MM-DD)")
	f.StringSliceVar(&planForm.TravelingWith, "with", nil, "Who is traveling, repeatable")
	f.StringSliceVar(&planForm.Lodging, "lodging", nil, "Preferred lodging, repeatable")
	f.StringSliceVar(&planForm.Adventure, "adventure", nil, "Activities wanted, repeatable")
	f.StringVar(&planForm.TripName, "name", "", "Trip name")
	f.BoolVar(&planColor, "color", false, "Colorize the JSON output")
	_ = planCmd.MarkFlagRequired("location")
	_ = planCmd.MarkFlagRequired("start")
	_ = planCmd.MarkFlagRequired("end")
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := planForm.ToTripRequest()
	if err != nil {
		return err
	}

	var pipeline services.ItineraryPipelineInterface
	app := fx.New(
		coreModules(),
		// stdout carries the itinerary.
		fx.Decorate(func(cfg config.Config) config.Config {
			cfg.Log.Console = "stderr"
			return cfg
		}),
		fx.Populate(&pipeline),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	doc, err := pipeline.GenerateItinerary(ctx, req)
	if err != nil {
		return err
	}

	out := pretty.Pretty(doc.Raw)
	if planColor {
		out = pretty.Color(out, nil)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
	return err
}
