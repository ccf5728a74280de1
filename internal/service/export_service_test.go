package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
)

type resolverStub struct {
	window *dto.CalendarResponse
	err    error
}

func (s resolverStub) ResolveWindow(ctx context.Context, req dto.CalendarRequest) (*dto.CalendarResponse, error) {
	return s.window, s.err
}

func testWindow() *dto.CalendarResponse {
	return &dto.CalendarResponse{
		Timezone: "Europe/Berlin",
		Days: []dto.DaySlots{
			{Date: "2025-03-03", Slots: []string{"09:00", "09:30"}},
			{Date: "2025-03-04", Slots: []string{}},
		},
	}
}

func TestExportServiceRendersCSV(t *testing.T) {
	svc := NewExportService(resolverStub{window: testWindow()}, nil)

	file, err := svc.Export(context.Background(), dto.CalendarRequest{TutorID: "tutor-1"}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "availability.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Content)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,weekday,slots", lines[0])
	assert.Equal(t, "2025-03-03,Monday,09:00 09:30", lines[1])
	assert.Equal(t, "2025-03-04,Tuesday,", lines[2])
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := NewExportService(resolverStub{window: testWindow()}, nil)

	file, err := svc.Export(context.Background(), dto.CalendarRequest{TutorID: "tutor-1"}, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc := NewExportService(resolverStub{window: testWindow()}, nil)

	file, err := svc.Export(context.Background(), dto.CalendarRequest{TutorID: "tutor-1"}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "availability.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	require.NotEmpty(t, file.Content)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(resolverStub{window: testWindow()}, nil)

	_, err := svc.Export(context.Background(), dto.CalendarRequest{TutorID: "tutor-1"}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServicePropagatesResolutionErrors(t *testing.T) {
	svc := NewExportService(resolverStub{err: appErrors.Clone(appErrors.ErrNotFound, "no profile matches the provided email")}, nil)

	_, err := svc.Export(context.Background(), dto.CalendarRequest{Email: "ghost@eclero.com"}, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}
