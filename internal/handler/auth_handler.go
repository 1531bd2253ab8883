package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lzradio/lzradio-backend/internal/middleware"
	"github.com/lzradio/lzradio-backend/internal/response"
	"github.com/lzradio/lzradio-backend/internal/service"
	"github.com/lzradio/lzradio-backend/internal/validator"
)

// AuthHandler handles device pairing endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// PairRequest is the device pairing payload.
type PairRequest struct {
	AccessCode string `json:"access_code" binding:"required,min=1"`
	DeviceName string `json:"device_name" binding:"required,min=1,max=100"`
}

// PairDevice godoc
// POST /api/v1/auth/pair
// Exchanges the station access code for a long-lived device token.
func (h *AuthHandler) PairDevice(c *gin.Context) {
	var req PairRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.PairDevice(req.AccessCode, req.DeviceName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPairingDisabled):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrPairingDisabled)
		case errors.Is(err, service.ErrInvalidAccessCode):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidAccessCode)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the paired device's identity.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"device_name": claims.DeviceName,
		"paired_at":   claims.IssuedAt,
		"expires_at":  claims.ExpiresAt,
	})
}
