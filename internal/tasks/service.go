package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"automation-coach/internal/catalog"
	"automation-coach/internal/clarification"
	"automation-coach/internal/comments"
	"automation-coach/internal/queue"
	rec "automation-coach/internal/recommendations"
	"automation-coach/internal/shared/metrics"
	"automation-coach/internal/shared/storage/object"
	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/shared/util"
)

const (
	maxTextLen   = 4000
	maxShortLen  = 200
	maxHours     = 1000
	DefaultLimit = 20
	MaxListLimit = 100
)

// CoachingProcessor generates the coaching document of a task. It is called
// in-process when no queue is configured.
type CoachingProcessor interface {
	ProcessTask(ctx context.Context, taskID string) error
}

// CommentFinder returns the published coach comment of a task.
type CommentFinder interface {
	LatestPublished(ctx context.Context, taskID string) (comments.Comment, error)
}

// Service contains business logic for tasks.
type Service struct {
	Repo     Repo
	Catalog  catalog.Repo
	Engine   *rec.Engine
	Comments CommentFinder
	Store    object.Store
	Queue    queue.Client
	Coaching CoachingProcessor
	Now      func() time.Time
}

// ClarificationChoice identifies an option picked from a clarification question.
type ClarificationChoice struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// CreateInput is a task submission.
type CreateInput struct {
	Organization      string
	Department        string
	Name              string
	Email             string
	JobDescription    string
	RepeatCycle       string
	AutomationRequest string
	CurrentTools      string
	EstimatedHours    float64
	Clarification     *ClarificationChoice
}

// Detail is a task with what was produced for it after submission.
type Detail struct {
	Task
	Comment  *comments.Comment `json:"comment,omitempty"`
	Coaching json.RawMessage   `json:"coaching,omitempty"`
}

// Create validates a submission, runs the recommendation engine over the
// active catalog, stores the analyzed task and schedules coaching generation.
func (s *Service) Create(ctx context.Context, in CreateInput) (Task, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Task{}, err
	}

	var (
		hint    *rec.ClarificationHint
		clar    *Clarification
		request = in.AutomationRequest
	)
	if in.Clarification != nil {
		opt, err := clarification.Resolve(in.Clarification.QuestionID, in.Clarification.OptionID)
		if err != nil {
			return Task{}, &ValidationError{Issues: []FieldIssue{{Field: "clarification", Issue: err.Error()}}}
		}
		applied := clarification.ApplyClarificationChoice(clarification.Request{
			JobDescription:    in.JobDescription,
			AutomationRequest: in.AutomationRequest,
		}, opt)
		request = applied.EnhancedAutomationRequest
		hint = applied.Hint()
		clar = &Clarification{
			QuestionID:         in.Clarification.QuestionID,
			OptionID:           opt.ID,
			Label:              opt.Label,
			CategoryHint:       opt.CategoryHint,
			AdditionalKeywords: applied.AdditionalKeywords,
		}
	}

	tools, err := s.Catalog.ListActive(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("load catalog: %w", err)
	}
	result := s.engine().Recommend(tools, in.JobDescription, request, in.EstimatedHours, hint)

	hours := in.EstimatedHours
	if hours <= 0 {
		hours = rec.DefaultEstimatedHours
	}
	now := s.now()
	task := Task{
		ID:                uuid.NewString(),
		Organization:      in.Organization,
		Department:        in.Department,
		Name:              in.Name,
		Email:             in.Email,
		JobDescription:    in.JobDescription,
		RepeatCycle:       in.RepeatCycle,
		AutomationRequest: request,
		CurrentTools:      in.CurrentTools,
		EstimatedHours:    hours,
		Recommendation:    &result,
		Clarification:     clar,
		Category:          result.Category,
		AutomationLevel:   result.AutomationLevel,
		Status:            StatusPending,
		CommentStatus:     CommentNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	analyzed := State{Status: StatusAnalyzed, CommentStatus: CommentNone}
	if err := ValidateTransition(task.State(), analyzed); err != nil {
		return Task{}, err
	}
	task.Status = analyzed.Status

	if err := s.Repo.Create(ctx, task); err != nil {
		return Task{}, err
	}
	metrics.IncRecommendation(string(result.Category))
	telemetry.Info("task.created", map[string]any{
		"task_id":    task.ID,
		"requester":  util.HashKey(task.Email),
		"category":   string(task.Category),
		"level":      string(task.AutomationLevel),
		"tools":      len(result.RecommendedTools),
		"clarified":  clar != nil,
		"request_id": RequestIDFromContext(ctx),
	})

	s.scheduleCoaching(ctx, task.ID)
	return task, nil
}

// Clarify runs the ambiguity analysis for a draft submission.
func (s *Service) Clarify(ctx context.Context, jobDescription, automationRequest string) (clarification.Result, error) {
	if err := ctx.Err(); err != nil {
		return clarification.Result{}, err
	}
	jobDescription = strings.TrimSpace(jobDescription)
	automationRequest = strings.TrimSpace(automationRequest)
	if jobDescription == "" && automationRequest == "" {
		return clarification.Result{}, &ValidationError{Issues: []FieldIssue{
			{Field: "job_description", Issue: "required"},
		}}
	}
	res := clarification.AnalyzeForClarification(jobDescription, automationRequest)
	metrics.IncClarification(res.NeedsClarification)
	return res, nil
}

// Get returns a task with its published comment and coaching document.
// Missing extras are omitted rather than failing the lookup.
func (s *Service) Get(ctx context.Context, taskID string) (Detail, error) {
	if strings.TrimSpace(taskID) == "" {
		return Detail{}, &ValidationError{Issues: []FieldIssue{{Field: "id", Issue: "required"}}}
	}
	task, err := s.Repo.GetByID(ctx, taskID)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{Task: task}

	if s.Comments != nil {
		c, err := s.Comments.LatestPublished(ctx, taskID)
		switch {
		case err == nil:
			detail.Comment = &c
		case !errors.Is(err, comments.ErrNotFound):
			return Detail{}, fmt.Errorf("load comment: %w", err)
		}
	}

	if s.Store != nil && task.CoachingKey != "" {
		doc, err := s.readCoaching(ctx, task.CoachingKey)
		switch {
		case err == nil:
			detail.Coaching = doc
		case errors.Is(err, object.ErrNotFound):
		default:
			telemetry.Warn("task.coaching_unavailable", map[string]any{"task_id": taskID, "error": err})
		}
	}
	return detail, nil
}

// ListByEmail returns a requester's tasks, newest first.
func (s *Service) ListByEmail(ctx context.Context, email string, limit, offset int) ([]Task, error) {
	email = util.NormalizeEmail(email)
	if email == "" {
		return nil, &ValidationError{Issues: []FieldIssue{{Field: "email", Issue: "required"}}}
	}
	return s.Repo.ListByEmail(ctx, email, clampLimit(limit), max(offset, 0))
}

// ListForCoach returns tasks for the coach desk, optionally filtered by status.
func (s *Service) ListForCoach(ctx context.Context, rawStatus string, limit, offset int) ([]Task, error) {
	var status Status
	if rawStatus = strings.TrimSpace(rawStatus); rawStatus != "" {
		parsed, ok := ParseStatus(rawStatus)
		if !ok {
			return nil, &ValidationError{Issues: []FieldIssue{{Field: "status", Issue: "unknown"}}}
		}
		status = parsed
	}
	return s.Repo.ListByStatus(ctx, status, clampLimit(limit), max(offset, 0))
}

// Complete closes a commented task.
func (s *Service) Complete(ctx context.Context, taskID string) (Task, error) {
	task, err := s.Repo.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	next := State{Status: StatusCompleted, CommentStatus: task.CommentStatus}
	if err := ValidateTransition(task.State(), next); err != nil {
		return Task{}, err
	}
	if err := s.Repo.UpdateState(ctx, taskID, task.State(), next); err != nil {
		return Task{}, err
	}
	telemetry.Info("task.completed", map[string]any{"task_id": taskID})
	return s.Repo.GetByID(ctx, taskID)
}

// RecordComment checks that a task can take a comment with the given status,
// runs persist, then moves the task along. It implements comments.TaskRecorder.
func (s *Service) RecordComment(ctx context.Context, taskID string, status comments.Status, persist func(context.Context) error) error {
	task, err := s.Repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %w", comments.ErrTaskNotFound, err)
		}
		return err
	}

	cur := task.State()
	next := cur
	switch status {
	case comments.StatusPublished:
		next.CommentStatus = CommentPublished
		if cur.Status == StatusAnalyzed || cur.Status == StatusPending {
			next.Status = StatusCommented
		}
	case comments.StatusDraft:
		if cur.CommentStatus == CommentNone {
			next.CommentStatus = CommentDraft
		}
	}
	if err := ValidateTransition(cur, next); err != nil {
		return fmt.Errorf("%w: %w", comments.ErrTaskState, err)
	}

	if err := persist(ctx); err != nil {
		return err
	}
	if next == cur {
		return nil
	}
	if err := s.Repo.UpdateState(ctx, taskID, cur, next); err != nil {
		return err
	}
	telemetry.Info("task.state_changed", map[string]any{
		"task_id": taskID,
		"from":    cur.String(),
		"to":      next.String(),
	})
	return nil
}

func (s *Service) scheduleCoaching(ctx context.Context, taskID string) {
	requestID := RequestIDFromContext(ctx)
	if s.Queue != nil {
		msg := queue.NewMessage(taskID, requestID, s.now())
		if err := s.Queue.Send(ctx, msg); err != nil {
			// The task is stored; coaching can be re-enqueued by the operator.
			telemetry.Error("task.coaching_enqueue_failed", map[string]any{
				"task_id":    taskID,
				"request_id": requestID,
				"error":      err,
			})
		}
		return
	}
	if s.Coaching == nil {
		return
	}
	go func(ctx context.Context) {
		if err := s.Coaching.ProcessTask(ctx, taskID); err != nil {
			telemetry.Error("task.coaching_failed", map[string]any{
				"task_id":    taskID,
				"request_id": requestID,
				"error":      err,
			})
		}
	}(backgroundWithRequestID(ctx))
}

func (s *Service) readCoaching(ctx context.Context, key string) (json.RawMessage, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("coaching document %s is not valid json", key)
	}
	return json.RawMessage(data), nil
}

func (s *Service) engine() *rec.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return rec.Default()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeInput(in CreateInput) CreateInput {
	in.Organization = strings.TrimSpace(in.Organization)
	in.Department = strings.TrimSpace(in.Department)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = util.NormalizeEmail(in.Email)
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.RepeatCycle = strings.TrimSpace(in.RepeatCycle)
	in.AutomationRequest = strings.TrimSpace(in.AutomationRequest)
	in.CurrentTools = strings.TrimSpace(in.CurrentTools)
	return in
}

func validateInput(in CreateInput) error {
	v := &ValidationError{}
	required := []struct {
		field, value string
		limit        int
	}{
		{"organization", in.Organization, maxShortLen},
		{"department", in.Department, maxShortLen},
		{"name", in.Name, maxShortLen},
		{"email", in.Email, maxShortLen},
		{"job_description", in.JobDescription, maxTextLen},
		{"repeat_cycle", in.RepeatCycle, maxShortLen},
		{"automation_request", in.AutomationRequest, maxTextLen},
	}
	for _, f := range required {
		switch {
		case f.value == "":
			v.add(f.field, "required")
		case len([]rune(f.value)) > f.limit:
			v.add(f.field, "too_long")
		}
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		v.add("email", "invalid")
	}
	if len([]rune(in.CurrentTools)) > maxTextLen {
		v.add("current_tools", "too_long")
	}
	if in.EstimatedHours < 0 || in.EstimatedHours > maxHours {
		v.add("estimated_hours", "out_of_range")
	}
	return v.orNil()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
