package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
	"github.com/hassansardar246/eclero-availability-api/pkg/response"
)

type availabilityService interface {
	ResolveWindow(ctx context.Context, req dto.CalendarRequest) (*dto.CalendarResponse, error)
}

type exportService interface {
	Export(ctx context.Context, req dto.CalendarRequest, format string) (*dto.ExportFile, error)
}

// AvailabilityHandler exposes the tutor calendar endpoints.
type AvailabilityHandler struct {
	service  availabilityService
	exporter exportService
}

// NewAvailabilityHandler constructs the handler. The exporter may be
// nil when the export endpoint is disabled.
func NewAvailabilityHandler(service availabilityService, exporter exportService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, exporter: exporter}
}

// Calendar godoc
// @Summary Resolve a tutor's bookable calendar window
// @Tags Availability
// @Produce json
// @Param tutorId query string false "Tutor ID (UUID, takes precedence over email)"
// @Param email query string false "Tutor email, resolved to an ID via profile lookup"
// @Param days query int false "Window length in days (1-60, default 30)"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /availability/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	req, err := parseCalendarQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ResolveWindow(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Download a tutor's calendar window as CSV or PDF
// @Tags Availability
// @Produce text/csv
// @Param tutorId query string false "Tutor ID (UUID, takes precedence over email)"
// @Param email query string false "Tutor email"
// @Param days query int false "Window length in days (1-60, default 30)"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /availability/calendar/export [get]
func (h *AvailabilityHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "calendar export is disabled"))
		return
	}

	req, err := parseCalendarQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exporter.Export(c.Request.Context(), req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Content)
}

// parseCalendarQuery maps query parameters onto a CalendarRequest.
// tutorId takes precedence when both identifiers are supplied; a
// non-numeric days value is treated as unspecified.
func parseCalendarQuery(c *gin.Context) (dto.CalendarRequest, error) {
	tutorID := pickQuery(c, "tutorId", "tutor_id")
	email := pickQuery(c, "email", "tutor_email")

	if tutorID == "" && email == "" {
		return dto.CalendarRequest{}, appErrors.Clone(appErrors.ErrValidation, "tutorId or email query parameter is required")
	}
	if tutorID != "" {
		if _, err := uuid.Parse(tutorID); err != nil {
			return dto.CalendarRequest{}, appErrors.Clone(appErrors.ErrValidation, "tutorId must be a valid UUID")
		}
		email = ""
	}

	days := 0
	if raw := pickQuery(c, "days", "windowDays"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	return dto.CalendarRequest{TutorID: tutorID, Email: email, Days: days}, nil
}

func pickQuery(c *gin.Context, preferred string, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}
