package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lzradio/lzradio-backend/internal/model"
	"github.com/lzradio/lzradio-backend/internal/repository"
	"github.com/lzradio/lzradio-backend/internal/response"
	"github.com/lzradio/lzradio-backend/internal/service"
	"github.com/lzradio/lzradio-backend/internal/validator"
)

// LogbookHandler handles contact CRUD and import/export endpoints.
type LogbookHandler struct {
	logbookService *service.LogbookService
}

// NewLogbookHandler creates a new LogbookHandler.
func NewLogbookHandler(logbookService *service.LogbookService) *LogbookHandler {
	return &LogbookHandler{logbookService: logbookService}
}

// ListContacts godoc
// GET /api/v1/logbook/contacts?callsign=fragment
func (h *LogbookHandler) ListContacts(c *gin.Context) {
	var contacts []model.Contact
	var err error

	if fragment := c.Query("callsign"); fragment != "" {
		contacts, err = h.logbookService.SearchContacts(c.Request.Context(), fragment)
	} else {
		contacts, err = h.logbookService.ListContacts(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}

	response.Success(c, http.StatusOK, gin.H{"contacts": contacts})
}

// CountContacts godoc
// GET /api/v1/logbook/contacts/count
func (h *LogbookHandler) CountContacts(c *gin.Context) {
	count, err := h.logbookService.CountContacts(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// SearchContacts godoc
// GET /api/v1/logbook/search?callsign=fragment
func (h *LogbookHandler) SearchContacts(c *gin.Context) {
	fragment := c.Query("callsign")
	if fragment == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	contacts, err := h.logbookService.SearchContacts(c.Request.Context(), fragment)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}

	response.Success(c, http.StatusOK, gin.H{"contacts": contacts})
}

// GetContact godoc
// GET /api/v1/logbook/contacts/:id
func (h *LogbookHandler) GetContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contact, err := h.logbookService.GetContact(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		} else {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// CreateContact godoc
// POST /api/v1/logbook/contacts
func (h *LogbookHandler) CreateContact(c *gin.Context) {
	var req model.CreateContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	contact, err := h.logbookService.CreateContact(c.Request.Context(), &req)
	if err != nil {
		failForContactError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"contact": contact})
}

// UpdateContact godoc
// PUT /api/v1/logbook/contacts/:id
func (h *LogbookHandler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	contact, err := h.logbookService.UpdateContact(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		} else {
			failForContactError(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact godoc
// DELETE /api/v1/logbook/contacts/:id
func (h *LogbookHandler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.logbookService.DeleteContact(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		} else {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// PreviewImport godoc
// POST /api/v1/logbook/import/preview
// Validates an export file and reports the duplicate/new partition
// without writing anything.
func (h *LogbookHandler) PreviewImport(c *gin.Context) {
	var data any
	if err := c.ShouldBindJSON(&data); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	preview, err := h.logbookService.PreviewImport(c.Request.Context(), data)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// ApplyImportRequest wraps the raw export payload with the adoption flag.
type ApplyImportRequest struct {
	Payload       any  `json:"payload" binding:"required"`
	AdoptCallsign bool `json:"adopt_callsign"`
}

// ApplyImport godoc
// POST /api/v1/logbook/import
// Re-validates the payload and inserts the contacts missing from the
// logbook.
func (h *LogbookHandler) ApplyImport(c *gin.Context) {
	var req ApplyImportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.logbookService.ApplyImport(c.Request.Context(), req.Payload, req.AdoptCallsign)
	if err != nil {
		if errors.Is(err, service.ErrNothingToImport) {
			response.Fail(c, http.StatusConflict, response.ErrNothingToImport)
		} else {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrImportInvalid, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Export godoc
// GET /api/v1/logbook/export
// Returns the canonical export payload for the whole logbook.
func (h *LogbookHandler) Export(c *gin.Context) {
	payload, err := h.logbookService.Export(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="logbook-export.json"`)
	c.JSON(http.StatusOK, payload)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func failForContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
	case errors.Is(err, service.ErrInvalidTime):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTime)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
