package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type LocationController struct {
	locationService services.LocationServiceInterface
	logger          *zap.Logger
}

func NewLocationController(locationService services.LocationServiceInterface, logger *zap.Logger) *LocationController {
	return &LocationController{
		locationService: locationService,
		logger:          logger,
	}
}

// SuggestLocations godoc
// @Summary Suggest trip destinations
// @Tags Location
// @Produce json
// @Param q query string true "Partial location name"
// @Success 200 {array} response_models.LocationSuggestion
// @Failure 503 {object} utils.APIResponse
// @Router /api/locations [get]
func (lc *LocationController) SuggestLocations(c *gin.Context) {
	suggestions, err := lc.locationService.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, lc.logger, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Locations fetched successfully")
}
