package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
)

type availabilityServiceMock struct {
	captured dto.CalendarRequest
	result   *dto.CalendarResponse
	err      error
}

func (m *availabilityServiceMock) ResolveWindow(ctx context.Context, req dto.CalendarRequest) (*dto.CalendarResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &dto.CalendarResponse{Timezone: "UTC", Days: []dto.DaySlots{}}, nil
}

type exportServiceMock struct {
	captured dto.CalendarRequest
	format   string
	file     *dto.ExportFile
	err      error
}

func (m *exportServiceMock) Export(ctx context.Context, req dto.CalendarRequest, format string) (*dto.ExportFile, error) {
	m.captured = req
	m.format = format
	if m.err != nil {
		return nil, m.err
	}
	return m.file, nil
}

func newCalendarContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestCalendarRequiresIdentifier(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, nil)
	c, w := newCalendarContext(t, "/availability/calendar")

	handler.Calendar(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestCalendarRejectsMalformedTutorID(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, nil)
	c, w := newCalendarContext(t, "/availability/calendar?tutorId=not-a-uuid")

	handler.Calendar(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarTutorIDTakesPrecedenceOverEmail(t *testing.T) {
	mockSvc := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(mockSvc, nil)
	tutorID := uuid.NewString()
	c, w := newCalendarContext(t, "/availability/calendar?tutorId="+tutorID+"&email=sam@eclero.com&days=45")

	handler.Calendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tutorID, mockSvc.captured.TutorID)
	assert.Empty(t, mockSvc.captured.Email)
	assert.Equal(t, 45, mockSvc.captured.Days)
}

func TestCalendarNonNumericDaysTreatedAsUnspecified(t *testing.T) {
	mockSvc := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(mockSvc, nil)
	c, w := newCalendarContext(t, "/availability/calendar?email=sam@eclero.com&days=abc")

	handler.Calendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sam@eclero.com", mockSvc.captured.Email)
	assert.Equal(t, 0, mockSvc.captured.Days)
}

func TestCalendarReturnsResolvedWindow(t *testing.T) {
	mockSvc := &availabilityServiceMock{result: &dto.CalendarResponse{
		Timezone: "Europe/Berlin",
		Days: []dto.DaySlots{
			{Date: "2025-03-03", Slots: []string{"09:00", "09:30"}},
			{Date: "2025-03-04", Slots: []string{}},
		},
	}}
	handler := NewAvailabilityHandler(mockSvc, nil)
	c, w := newCalendarContext(t, "/availability/calendar?email=sam@eclero.com")

	handler.Calendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Europe/Berlin", body.Timezone)
	require.Len(t, body.Days, 2)
	assert.Equal(t, []string{"09:00", "09:30"}, body.Days[0].Slots)
	assert.NotNil(t, body.Days[1].Slots)
}

func TestCalendarMapsNotFound(t *testing.T) {
	mockSvc := &availabilityServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "no profile matches the provided email")}
	handler := NewAvailabilityHandler(mockSvc, nil)
	c, w := newCalendarContext(t, "/availability/calendar?email=ghost@eclero.com")

	handler.Calendar(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendarMapsStorageError(t *testing.T) {
	mockSvc := &availabilityServiceMock{err: appErrors.Wrap(context.DeadlineExceeded, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load weekly availability rules")}
	handler := NewAvailabilityHandler(mockSvc, nil)
	c, w := newCalendarContext(t, "/availability/calendar?email=sam@eclero.com")

	handler.Calendar(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.Contains(t, body, "details")
}

func TestExportStreamsFile(t *testing.T) {
	mockExport := &exportServiceMock{file: &dto.ExportFile{
		Filename:    "availability.csv",
		ContentType: "text/csv",
		Content:     []byte("date,weekday,slots\n"),
	}}
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, mockExport)
	c, w := newCalendarContext(t, "/availability/calendar/export?email=sam@eclero.com&format=csv")

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mockExport.format)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "availability.csv")
	assert.Contains(t, w.Body.String(), "date,weekday,slots")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	mockExport := &exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")}
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, mockExport)
	c, w := newCalendarContext(t, "/availability/calendar/export?email=sam@eclero.com&format=xlsx")

	handler.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDisabled(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, nil)
	c, w := newCalendarContext(t, "/availability/calendar/export?email=sam@eclero.com")

	handler.Export(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
