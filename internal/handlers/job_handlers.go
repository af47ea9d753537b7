package handlers

import (
	"errors"
	"net/http"

	"smartrental/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobRunner is satisfied by *background.JobScheduler.
type JobRunner interface {
	GetJobStatus() []background.JobStatus
	RunNow(name string) error
}

type JobHandlers struct {
	runner JobRunner
}

func NewJobHandlers(runner JobRunner) *JobHandlers {
	return &JobHandlers{runner: runner}
}

// ListJobs returns every scheduled job with its next run.
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"jobs": h.runner.GetJobStatus()})
}

// RunJob triggers a job immediately. The job runs in the background.
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.runner.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		return serviceError(c, "start job", err)
	}
	return message(c, http.StatusAccepted, "Job started")
}
