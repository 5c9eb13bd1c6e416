package tasks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"automation-coach/internal/shared/server/middleware"
	"automation-coach/internal/shared/server/respond"
	"automation-coach/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the tasks service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the requester-facing task routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tasks", h.createTask)
	rg.POST("/tasks/clarify", h.clarify)
	rg.GET("/tasks", h.listTasks)
	rg.GET("/tasks/:id", h.getTask)
}

// RegisterCoachRoutes attaches the coach desk routes. Callers mount the group
// behind middleware.RequireCoach.
func (h *Handler) RegisterCoachRoutes(rg *gin.RouterGroup) {
	rg.GET("/tasks", h.listForCoach)
	rg.POST("/tasks/:id/complete", h.completeTask)
}

type createTaskRequest struct {
	Organization      string               `json:"organization"`
	Department        string               `json:"department"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	JobDescription    string               `json:"job_description"`
	RepeatCycle       string               `json:"repeat_cycle"`
	AutomationRequest string               `json:"automation_request"`
	CurrentTools      string               `json:"current_tools"`
	EstimatedHours    *float64             `json:"estimated_hours"`
	Clarification     *ClarificationChoice `json:"clarification"`
}

type clarifyRequest struct {
	JobDescription    string `json:"job_description"`
	AutomationRequest string `json:"automation_request"`
}

func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	in := CreateInput{
		Organization:      req.Organization,
		Department:        req.Department,
		Name:              req.Name,
		Email:             req.Email,
		JobDescription:    req.JobDescription,
		RepeatCycle:       req.RepeatCycle,
		AutomationRequest: req.AutomationRequest,
		CurrentTools:      req.CurrentTools,
		Clarification:     req.Clarification,
	}
	if req.EstimatedHours != nil {
		in.EstimatedHours = *req.EstimatedHours
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	task, err := h.Svc.Create(ctx, in)
	if err != nil {
		writeError(c, err, "failed to create task")
		return
	}
	c.Set(middleware.TaskIDKey, task.ID)
	c.Set(middleware.StatusTransitionKey, string(StatusPending)+"->"+string(task.Status))

	respond.Created(c, gin.H{"data": gin.H{
		"task_id":        task.ID,
		"status":         task.Status,
		"recommendation": task.Recommendation,
	}})
}

func (h *Handler) clarify(c *gin.Context) {
	var req clarifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Clarify(c.Request.Context(), req.JobDescription, req.AutomationRequest)
	if err != nil {
		writeError(c, err, "failed to analyze request")
		return
	}
	respond.OK(c, gin.H{"data": res})
}

func (h *Handler) getTask(c *gin.Context) {
	taskID := c.Param("id")
	c.Set(middleware.TaskIDKey, taskID)
	detail, err := h.Svc.Get(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err, "failed to fetch task")
		return
	}
	respond.OK(c, gin.H{"data": detail})
}

func (h *Handler) listTasks(c *gin.Context) {
	limit, offset := pageParams(c)
	list, err := h.Svc.ListByEmail(c.Request.Context(), c.Query("email"), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list tasks")
		return
	}
	respond.OK(c, gin.H{"data": list})
}

func (h *Handler) listForCoach(c *gin.Context) {
	limit, offset := pageParams(c)
	list, err := h.Svc.ListForCoach(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list tasks")
		return
	}
	respond.OK(c, gin.H{"data": list})
}

func (h *Handler) completeTask(c *gin.Context) {
	taskID := c.Param("id")
	c.Set(middleware.TaskIDKey, taskID)
	task, err := h.Svc.Complete(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err, "failed to complete task")
		return
	}
	c.Set(middleware.StatusTransitionKey, string(StatusCommented)+"->"+string(task.Status))
	respond.OK(c, gin.H{"data": task})
}

func writeError(c *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid task request", verr.Issues)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "task not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "task changed, retry", nil)
	default:
		telemetry.Error("task.request_failed", map[string]any{
			"path":  c.FullPath(),
			"error": err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}

func pageParams(c *gin.Context) (int, int) {
	limit := DefaultLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
