package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	"github.com/aiinbox/dayflow-api/pkg/config"
)

func reportView() *dto.ScheduleViewResponse {
	return &dto.ScheduleViewResponse{
		From: "2024-11-11",
		To:   "2024-11-12",
		Days: []dto.DayView{
			{
				Date:   "2024-11-11",
				Status: models.DayStatusBusy,
				Stats: models.DayBreakdown{
					TotalScore:      6,
					DeepWorkMinutes: 180,
					EventCount:      4,
					Penalties:       []models.Penalty{{Reason: "Missed Lunch", Points: 2, Count: 1}},
				},
			},
			{
				Date:   "2024-11-12",
				Status: models.DayStatusHealthy,
				Stats:  models.DayBreakdown{TotalScore: 1, DeepWorkMinutes: 30, EventCount: 1},
			},
		},
	}
}

func TestReportServiceWorkloadCSV(t *testing.T) {
	svc := NewReportService(&fakeViewer{view: reportView()}, zap.NewNop(), config.ReportsConfig{Enabled: true})

	file, err := svc.Workload(context.Background(), monday, monday.AddDate(0, 0, 1), ReportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "workload_2024-11-11_2024-11-12.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Data)
	assert.Contains(t, body, "Date,Status,Total Score,Deep Work (min),Events,Penalties")
	assert.Contains(t, body, "2024-11-11,busy,6.0,180,4,1")
	assert.Contains(t, body, "Total Score,7.0")
	assert.Contains(t, body, "Total Deep Work (min),210")
}

func TestReportServiceWorkloadPDF(t *testing.T) {
	svc := NewReportService(&fakeViewer{view: reportView()}, zap.NewNop(), config.ReportsConfig{Enabled: true})

	file, err := svc.Workload(context.Background(), monday, monday.AddDate(0, 0, 1), ReportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "workload_2024-11-11_2024-11-12.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestReportServiceDefaultsToCSV(t *testing.T) {
	svc := NewReportService(&fakeViewer{view: reportView()}, zap.NewNop(), config.ReportsConfig{Enabled: true})

	file, err := svc.Workload(context.Background(), monday, monday.AddDate(0, 0, 1), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestReportServiceDisabled(t *testing.T) {
	svc := NewReportService(&fakeViewer{view: reportView()}, zap.NewNop(), config.ReportsConfig{Enabled: false})

	_, err := svc.Workload(context.Background(), monday, monday.AddDate(0, 0, 1), ReportFormatCSV)
	assert.Error(t, err)
}
