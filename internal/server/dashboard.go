package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetDashboard(c *gin.Context) {
	overview, err := s.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Latest-run rows carry display-formatted time and duration alongside
	// the raw values.
	latest := make([]gin.H, 0, len(overview.LatestRuns))
	for _, run := range overview.LatestRuns {
		latest = append(latest, gin.H{
			"id":            run.ID,
			"workflow_name": run.WorkflowName,
			"business_id":   run.BusinessID,
			"business_name": run.BusinessName,
			"plan_code":     run.PlanCode,
			"status":        run.Status,
			"start_time":    FormatDatetime(run.StartTime),
			"duration":      FormatDuration(run.DurationMs),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"total_businesses":             overview.TotalBusinesses,
		"active_subscriptions_by_plan": overview.ActiveByPlan,
		"runs_last_7_days":             overview.RunsLast7Days,
		"failed_runs_last_7_days":      overview.FailedRunsLast7Days,
		"runs_per_day":                 overview.RunsPerDay,
		"failures_by_workflow":         overview.FailuresByWorkflow,
		"step_status_distribution":     overview.StepStatusDistribution,
		"latest_runs":                  latest,
	}})
}

func (s *Server) ClearCache(c *gin.Context) {
	s.catalogSvc.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}
