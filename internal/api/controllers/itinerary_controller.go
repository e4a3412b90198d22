package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/api/views"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type ItineraryController struct {
	pipeline       services.ItineraryPipelineInterface
	logger         *zap.Logger
	locationSearch bool
}

func NewItineraryController(pipeline services.ItineraryPipelineInterface, logger *zap.Logger, locationSearch bool) *ItineraryController {
	return &ItineraryController{
		pipeline:       pipeline,
		logger:         logger,
		locationSearch: locationSearch,
	}
}

func (ic *ItineraryController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (ic *ItineraryController) PlanTrip(c *gin.Context) {
	c.HTML(http.StatusOK, "plan-trip.html", gin.H{
		"Title":          "Plan a trip",
		"TravelingWith":  views.TravelingWithOptions,
		"Lodging":        views.LodgingOptions,
		"Adventure":      views.AdventureOptions,
		"LocationSearch": ic.locationSearch,
	})
}

// ViewTrip handles the plan-trip form post and renders the finished itinerary.
func (ic *ItineraryController) ViewTrip(c *gin.Context) {
	var form request_models.PlanTripForm
	if err := c.ShouldBind(&form); err != nil {
		ic.renderError(c, http.StatusBadRequest, "Please fill in the location and both trip dates", false)
		return
	}

	req, err := form.ToTripRequest()
	if err != nil {
		ic.renderServiceError(c, err)
		return
	}

	doc, err := ic.pipeline.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		ic.renderServiceError(c, err)
		return
	}

	itinerary, err := doc.Itinerary()
	if err != nil {
		ic.renderServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "view-trip.html", gin.H{
		"Title":     itinerary.Location,
		"Itinerary": itinerary,
	})
}

// CreateItinerary godoc
// @Summary Generate a trip itinerary
// @Description Runs both generation stages and returns the itinerary JSON with typical weather
// @Tags Itinerary
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.PlanTripForm true "Trip details"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/itineraries [post]
func (ic *ItineraryController) CreateItinerary(c *gin.Context) {
	var form request_models.PlanTripForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	req, err := form.ToTripRequest()
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	doc, err := ic.pipeline.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	utils.RespondSuccess(c, doc, "Itinerary generated successfully")
}

func (ic *ItineraryController) renderServiceError(c *gin.Context, err error) {
	code, message := utils.ErrorStatus(err)
	if code >= http.StatusInternalServerError {
		ic.logger.Error("view trip failed",
			zap.String("trace_id", utils.TraceID(c)),
			zap.Int("status", code),
			zap.Error(err))
	}
	ic.renderError(c, code, message, utils.IsRetryable(err))
}

func (ic *ItineraryController) renderError(c *gin.Context, code int, message string, retryable bool) {
	c.HTML(code, "error.html", gin.H{
		"Title":     "Something went wrong",
		"Message":   message,
		"Retryable": retryable,
		"TraceID":   utils.TraceID(c),
	})
}
