package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
	"github.com/oceandiag/ocean-diagnostics-go/pkg/response"
)

// StatsHandler handles HTTP requests for statistical diagnostics
type StatsHandler struct {
	diagService *service.DiagnosticsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(diagService *service.DiagnosticsService) *StatsHandler {
	return &StatsHandler{
		diagService: diagService,
	}
}

// Distribution handles POST /api/v1/stats/distribution
func (h *StatsHandler) Distribution(c *gin.Context) {
	var req models.DistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	curve, err := h.diagService.Distribution(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, curve)
}

// Extrema handles POST /api/v1/stats/extrema
func (h *StatsHandler) Extrema(c *gin.Context) {
	var req models.ExtremaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.diagService.Extrema(&req)
	if err != nil {
		if isClientError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// TidalFilter handles POST /api/v1/stats/tidal-filter
func (h *StatsHandler) TidalFilter(c *gin.Context) {
	var req models.TidalFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.diagService.TidalFilter(&req)
	if err != nil {
		if isClientError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Compare handles POST /api/v1/stats/compare
func (h *StatsHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.diagService.Compare(&req)
	if err != nil {
		if isClientError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, resp)
}
