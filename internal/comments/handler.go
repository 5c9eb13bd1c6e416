package comments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"automation-coach/internal/shared/server/middleware"
	"automation-coach/internal/shared/server/respond"
)

// Handler wires the coach comment routes. Callers mount it behind
// middleware.RequireCoach.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches comment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/comments", h.createComment)
	rg.GET("/tasks/:id/comments", h.listComments)
}

type createCommentRequest struct {
	TaskID           string `json:"task_id"`
	AdditionalTools  string `json:"additional_tools"`
	ToolExplanation  string `json:"tool_explanation"`
	Tips             string `json:"tips"`
	LearningPriority string `json:"learning_priority"`
	GeneralComment   string `json:"general_comment"`
	Status           string `json:"status"`
}

func (h *Handler) createComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set(middleware.TaskIDKey, req.TaskID)

	comment, err := h.Svc.Create(c.Request.Context(), CreateInput{
		TaskID:           req.TaskID,
		AdditionalTools:  req.AdditionalTools,
		ToolExplanation:  req.ToolExplanation,
		Tips:             req.Tips,
		LearningPriority: req.LearningPriority,
		GeneralComment:   req.GeneralComment,
		Status:           Status(req.Status),
		CoachEmail:       middleware.UserEmailFromContext(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrTaskNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "task not found", nil)
		case errors.Is(err, ErrTaskState):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create comment", nil)
		}
		return
	}
	if comment.Status == StatusPublished {
		c.Set(middleware.StatusTransitionKey, "commented")
	}

	respond.Created(c, gin.H{"data": gin.H{
		"comment_id": comment.ID,
		"status":     comment.Status,
	}})
}

func (h *Handler) listComments(c *gin.Context) {
	taskID := c.Param("id")
	c.Set(middleware.TaskIDKey, taskID)
	list, err := h.Svc.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list comments", nil)
		return
	}
	respond.OK(c, gin.H{"data": list})
}
