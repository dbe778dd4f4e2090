package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/pkg/config"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
	"github.com/aiinbox/dayflow-api/pkg/export"
)

// ReportFormat selects the workload report output encoding.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportFile is a rendered report ready for download.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService renders per-day workload summaries as CSV or PDF.
type ReportService struct {
	views   ScheduleViewer
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	enabled bool
}

// NewReportService constructs the service.
func NewReportService(views ScheduleViewer, logger *zap.Logger, cfg config.ReportsConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		views:   views,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// Workload builds the report for the inclusive [from, to] window.
func (s *ReportService) Workload(ctx context.Context, from, to time.Time, format ReportFormat) (*ReportFile, error) {
	if !s.enabled {
		return nil, appErrors.New("REPORTS_DISABLED", appErrors.ErrNotFound.Status, "workload reports are disabled")
	}
	if format == "" {
		format = ReportFormatCSV
	}

	view, _, err := s.views.View(ctx, from, to)
	if err != nil {
		return nil, err
	}

	headers := []string{"Date", "Status", "Total Score", "Deep Work (min)", "Events", "Penalties"}
	dataset := export.Dataset{Headers: headers}

	var totalScore float64
	var totalDeepWork, totalEvents int
	for _, day := range view.Days {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":            day.Date,
			"Status":          string(day.Status),
			"Total Score":     fmt.Sprintf("%.1f", day.Stats.TotalScore),
			"Deep Work (min)": fmt.Sprintf("%d", day.Stats.DeepWorkMinutes),
			"Events":          fmt.Sprintf("%d", day.Stats.EventCount),
			"Penalties":       fmt.Sprintf("%d", len(day.Stats.Penalties)),
		})
		totalScore += day.Stats.TotalScore
		totalDeepWork += day.Stats.DeepWorkMinutes
		totalEvents += day.Stats.EventCount
	}
	dataset.Summary = [][2]string{
		{"Total Score", fmt.Sprintf("%.1f", totalScore)},
		{"Total Deep Work (min)", fmt.Sprintf("%d", totalDeepWork)},
		{"Total Events", fmt.Sprintf("%d", totalEvents)},
	}

	base := fmt.Sprintf("workload_%s_%s", view.From, view.To)

	switch format {
	case ReportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("render workload csv: %w", err)
		}
		return &ReportFile{Filename: base + ".csv", ContentType: "text/csv", Data: data}, nil
	case ReportFormatPDF:
		data, err := s.pdf.Render(dataset, "Workload Report")
		if err != nil {
			return nil, fmt.Errorf("render workload pdf: %w", err)
		}
		return &ReportFile{Filename: base + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("unsupported report format %q", format))
	}
}
