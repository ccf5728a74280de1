package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
	"github.com/hassansardar246/eclero-availability-api/pkg/export"
)

type windowResolver interface {
	ResolveWindow(ctx context.Context, req dto.CalendarRequest) (*dto.CalendarResponse, error)
}

// ExportService renders resolved calendar windows as downloadable files.
type ExportService struct {
	resolver windowResolver
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(resolver windowResolver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		resolver: resolver,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Export resolves the window and renders it in the requested format.
func (s *ExportService) Export(ctx context.Context, req dto.CalendarRequest, format string) (*dto.ExportFile, error) {
	window, err := s.resolver.ResolveWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	data := calendarDataset(window)
	switch strings.ToLower(format) {
	case "", "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &dto.ExportFile{Filename: "availability.csv", ContentType: "text/csv", Content: payload}, nil
	case "pdf":
		payload, err := s.pdf.Render(data, "Tutor availability ("+window.Timezone+")")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &dto.ExportFile{Filename: "availability.pdf", ContentType: "application/pdf", Content: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// calendarDataset flattens a resolved window into one row per day.
func calendarDataset(window *dto.CalendarResponse) export.Dataset {
	rows := make([]map[string]string, 0, len(window.Days))
	for _, day := range window.Days {
		weekday := ""
		if parsed, err := time.Parse("2006-01-02", day.Date); err == nil {
			weekday = parsed.Weekday().String()
		}
		rows = append(rows, map[string]string{
			"date":    day.Date,
			"weekday": weekday,
			"slots":   strings.Join(day.Slots, " "),
		})
	}
	return export.Dataset{Headers: []string{"date", "weekday", "slots"}, Rows: rows}
}
