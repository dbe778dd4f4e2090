package dto

// WorkloadReportQuery selects the window and output format of a workload
// report download.
type WorkloadReportQuery struct {
	From   string `form:"from" binding:"required,datetime=2006-01-02"`
	To     string `form:"to" binding:"required,datetime=2006-01-02"`
	Format string `form:"format" binding:"omitempty,oneof=csv pdf"`
}
