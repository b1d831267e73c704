package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grandstay-backend/services"
	"grandstay-backend/utils"
)

type MetricsController struct {
	metrics *services.MetricsService
}

func NewMetricsController(metrics *services.MetricsService) *MetricsController {
	return &MetricsController{metrics: metrics}
}

// GetKPIs handles GET /api/metrics?from&to. Defaults to the last 30 days.
func (mc *MetricsController) GetKPIs(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		to = parsed
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := mc.metrics.GetKPIs(ctx, from, to)
	if err != nil {
		utils.JSONFailure(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
