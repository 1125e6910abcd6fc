package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	workflowdomain "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
)

func (s *Server) ListStepLogs(c *gin.Context) {
	var query struct {
		RunID       string `form:"run_id"`
		ModulePhase string `form:"module_phase"`
		Status      string `form:"status"`
		ChannelType string `form:"channel_type"`
		BusinessID  string `form:"business_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	phases := splitCSVParam(query.ModulePhase)
	if err := validateAllowed("module_phase", phases, workflowdomain.ModulePhases); err != nil {
		AbortWithError(c, err)
		return
	}
	statuses := splitCSVParam(query.Status)
	if err := validateAllowed("status", statuses, workflowdomain.StepStatuses); err != nil {
		AbortWithError(c, err)
		return
	}

	steps, err := s.workflowSvc.ListSteps(c.Request.Context(), workflowdomain.ListStepsRequest{
		RunID:        query.RunID,
		ModulePhases: phases,
		Statuses:     statuses,
		ChannelType:  strings.TrimSpace(query.ChannelType),
		BusinessID:   strings.TrimSpace(query.BusinessID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := make([]gin.H, 0, len(steps))
	for _, step := range steps {
		rows = append(rows, gin.H{
			"id":            step.ID,
			"run_id":        step.RunID,
			"business_id":   step.BusinessID,
			"step_order":    step.StepOrder,
			"node_name":     step.NodeName,
			"module_phase":  step.ModulePhase,
			"intent_action": step.IntentAction,
			"channel_type":  step.ChannelType,
			"status":        step.Status,
			"started_at":    FormatDatetime(step.StartedAt),
			"duration":      FormatDuration(step.DurationMs),
			"error_message": step.ErrorMessage,
		})
	}

	// The analytics block summarizes exactly the page of steps returned by
	// the applied filters.
	summary := s.analyticsSvc.SummarizeSteps(steps)

	c.JSON(http.StatusOK, gin.H{
		"data":      rows,
		"analytics": summary,
	})
}

func (s *Server) GetStepLogByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	step, err := s.workflowSvc.GetStep(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":              step.ID,
		"run_id":          step.RunID,
		"business_id":     step.BusinessID,
		"step_order":      step.StepOrder,
		"node_name":       step.NodeName,
		"module_phase":    step.ModulePhase,
		"intent_action":   step.IntentAction,
		"channel_type":    step.ChannelType,
		"status":          step.Status,
		"started_at":      FormatDatetime(step.StartedAt),
		"duration":        FormatDuration(step.DurationMs),
		"error_message":   step.ErrorMessage,
		"input_summary":   step.InputSummary,
		"output_summary":  step.OutputSummary,
		"raw_input_json":  step.RawInputJSON,
		"raw_output_json": step.RawOutputJSON,
	}})
}
