// Package api wires the HTTP routes of the trip planner.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/api/controllers"
	"tripplanner/internal/api/views"
	"tripplanner/pkg/middleware"
)

func NewRouter(
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	locationController *controllers.LocationController,
) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	RegisterRoutes(r, itineraryController, locationController)

	return r, nil
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	locationController *controllers.LocationController) {

	r.GET("/", itineraryController.Home)
	r.GET("/plan_trip", itineraryController.PlanTrip)
	r.POST("/view_trip", itineraryController.ViewTrip)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	apiGroup.POST("/itineraries", itineraryController.CreateItinerary)
	apiGroup.GET("/locations", locationController.SuggestLocations)
}
