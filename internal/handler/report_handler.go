package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/service"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
	"github.com/aiinbox/dayflow-api/pkg/response"
)

type reportService interface {
	Workload(ctx context.Context, from, to time.Time, format service.ReportFormat) (*service.ReportFile, error)
}

// ReportHandler exposes workload report downloads.
type ReportHandler struct {
	service reportService
}

// NewReportHandler builds the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Workload godoc
// @Summary Download a workload report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} file
// @Router /reports/workload [get]
func (h *ReportHandler) Workload(c *gin.Context) {
	var query dto.WorkloadReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report query"))
		return
	}

	from, _ := time.Parse("2006-01-02", query.From)
	to, _ := time.Parse("2006-01-02", query.To)

	file, err := h.service.Workload(c.Request.Context(), from, to, service.ReportFormat(query.Format))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
