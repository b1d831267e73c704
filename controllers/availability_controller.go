package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type AvailabilityController struct {
	availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{availability: availability}
}

// CheckAvailability handles GET /api/availability?check_in&check_out&room_type.
func (ac *AvailabilityController) CheckAvailability(c *gin.Context) {
	rawIn := c.Query("check_in")
	rawOut := c.Query("check_out")
	if rawIn == "" || rawOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	checkIn, err := parseDate(rawIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(rawOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rooms, err := ac.availability.FindAvailableRooms(ctx, checkIn, checkOut, c.Query("room_type"))
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"availableRooms": rooms,
		"count":          len(rooms),
	})
}

// GetSummary handles GET /api/availability/summary, an occupancy snapshot for
// today (or an explicit as_of date).
func (ac *AvailabilityController) GetSummary(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		asOf = parsed
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	summary, err := ac.availability.OccupancySummary(ctx, asOf)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
