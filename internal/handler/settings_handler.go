package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lzradio/lzradio-backend/internal/response"
	"github.com/lzradio/lzradio-backend/internal/service"
	"github.com/lzradio/lzradio-backend/internal/validator"
)

// SettingsHandler handles station settings endpoints.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetStation godoc
// GET /api/v1/settings/station
func (h *SettingsHandler) GetStation(c *gin.Context) {
	settings := h.settingsService.GetStation(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"station": settings})
}

// UpdateStationRequest is the station settings payload.
type UpdateStationRequest struct {
	Callsign     string `json:"callsign" binding:"required,min=3,max=20"`
	OperatorName string `json:"operator_name" binding:"omitempty,max=100"`
	Locator      string `json:"locator" binding:"omitempty,max=10"`
}

// UpdateStation godoc
// PUT /api/v1/settings/station
func (h *SettingsHandler) UpdateStation(c *gin.Context) {
	var req UpdateStationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	settings := service.StationSettings{
		Callsign:     req.Callsign,
		OperatorName: req.OperatorName,
		Locator:      req.Locator,
	}
	if !h.settingsService.SetStation(c.Request.Context(), settings) {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"station": h.settingsService.GetStation(c.Request.Context())})
}
