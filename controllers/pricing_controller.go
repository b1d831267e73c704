package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type PricingController struct {
	pricing *services.PricingService
}

func NewPricingController(pricing *services.PricingService) *PricingController {
	return &PricingController{pricing: pricing}
}

// GetPricing handles GET /api/pricing.
func (pc *PricingController) GetPricing(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	pricing, err := pc.pricing.List(ctx)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pricing)
}

// UpdatePricing handles PUT /api/pricing/:roomType (upsert).
func (pc *PricingController) UpdatePricing(c *gin.Context) {
	var input services.UpsertPricingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pricing, err := pc.pricing.Upsert(ctx, c.Param("roomType"), input)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pricing)
}
