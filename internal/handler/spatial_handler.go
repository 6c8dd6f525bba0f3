package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
	"github.com/oceandiag/ocean-diagnostics-go/pkg/response"
)

// SpatialHandler handles HTTP requests for spatial subsetting
type SpatialHandler struct {
	diagService *service.DiagnosticsService
}

// NewSpatialHandler creates a new spatial handler
func NewSpatialHandler(diagService *service.DiagnosticsService) *SpatialHandler {
	return &SpatialHandler{
		diagService: diagService,
	}
}

// RadiusQuery handles POST /api/v1/spatial/radius
func (h *SpatialHandler) RadiusQuery(c *gin.Context) {
	var req models.RadiusQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.diagService.RadiusQuery(c.Request.Context(), &req)
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

// NearestQuery handles POST /api/v1/spatial/nearest
func (h *SpatialHandler) NearestQuery(c *gin.Context) {
	var req models.NearestQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.diagService.NearestQuery(c.Request.Context(), &req)
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

// TrackSummary handles POST /api/v1/spatial/track/summary
func (h *SpatialHandler) TrackSummary(c *gin.Context) {
	var req models.TrackSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response.Success(c, h.diagService.TrackSummary(&req))
}
