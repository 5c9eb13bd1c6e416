package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/shared/util"
)

// DefaultCoachName is the display name comments are signed with.
const DefaultCoachName = "디마불사"

// TaskRecorder applies a comment to its task. persist runs after the task
// state has been checked and before the new state is stored.
type TaskRecorder interface {
	RecordComment(ctx context.Context, taskID string, status Status, persist func(context.Context) error) error
}

// Service contains business logic for coach comments.
type Service struct {
	Repo      Repo
	Tasks     TaskRecorder
	CoachName string
}

// CreateInput is a coach's comment submission.
type CreateInput struct {
	TaskID           string
	AdditionalTools  string
	ToolExplanation  string
	Tips             string
	LearningPriority string
	GeneralComment   string
	// Status defaults to published.
	Status     Status
	CoachEmail string
}

// Create stores a comment and moves its task along. A published comment
// marks the task commented; a draft only records that work has started.
func (s *Service) Create(ctx context.Context, in CreateInput) (Comment, error) {
	taskID := strings.TrimSpace(in.TaskID)
	if taskID == "" {
		return Comment{}, fmt.Errorf("%w: task_id is required", ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = StatusPublished
	}
	if !status.Valid() {
		return Comment{}, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	now := time.Now().UTC()
	comment := Comment{
		ID:               uuid.NewString(),
		TaskID:           taskID,
		AdditionalTools:  strings.TrimSpace(in.AdditionalTools),
		ToolExplanation:  strings.TrimSpace(in.ToolExplanation),
		Tips:             strings.TrimSpace(in.Tips),
		LearningPriority: strings.TrimSpace(in.LearningPriority),
		GeneralComment:   strings.TrimSpace(in.GeneralComment),
		Status:           status,
		CoachName:        s.coachName(),
		CoachEmail:       util.NormalizeEmail(in.CoachEmail),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if !comment.HasContent() {
		return Comment{}, fmt.Errorf("%w: comment has no content", ErrValidation)
	}

	persist := func(ctx context.Context) error {
		return s.Repo.Create(ctx, comment)
	}
	if err := s.Tasks.RecordComment(ctx, taskID, status, persist); err != nil {
		return Comment{}, err
	}

	telemetry.Info("comment.created", map[string]any{
		"comment_id": comment.ID,
		"task_id":    taskID,
		"status":     string(status),
	})
	return comment, nil
}

// ListByTask returns every comment of a task, newest first.
func (s *Service) ListByTask(ctx context.Context, taskID string) ([]Comment, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, fmt.Errorf("%w: task_id is required", ErrValidation)
	}
	return s.Repo.ListByTask(ctx, taskID)
}

func (s *Service) coachName() string {
	if name := strings.TrimSpace(s.CoachName); name != "" {
		return name
	}
	return DefaultCoachName
}
