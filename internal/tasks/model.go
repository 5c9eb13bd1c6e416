package tasks

import (
	"fmt"
	"time"

	rec "automation-coach/internal/recommendations"
)

// Status is where a task is in the coaching workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAnalyzed  Status = "analyzed"
	StatusCommented Status = "commented"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts the known status names.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusAnalyzed, StatusCommented, StatusCompleted:
		return s, true
	}
	return "", false
}

// CommentStatus tracks the coach comment attached to a task.
type CommentStatus string

const (
	CommentNone      CommentStatus = "none"
	CommentDraft     CommentStatus = "draft"
	CommentPublished CommentStatus = "published"
)

// State is the pair of statuses that move together.
type State struct {
	Status        Status
	CommentStatus CommentStatus
}

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.Status, s.CommentStatus)
}

var (
	statusEdges = map[Status][]Status{
		StatusPending:   {StatusAnalyzed},
		StatusAnalyzed:  {StatusCommented},
		StatusCommented: {StatusCompleted},
	}
	commentEdges = map[CommentStatus][]CommentStatus{
		CommentNone:  {CommentDraft, CommentPublished},
		CommentDraft: {CommentPublished},
	}
)

// ValidateTransition reports whether a task may move from one state to the
// next. Staying in place is allowed until the task is completed; a commented
// task always carries a published comment.
func ValidateTransition(from, to State) error {
	if from.Status == StatusCompleted {
		return fmt.Errorf("%w: %s is final", ErrInvalidTransition, from)
	}
	if from.Status != to.Status && !contains(statusEdges[from.Status], to.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if from.CommentStatus != to.CommentStatus && !contains(commentEdges[from.CommentStatus], to.CommentStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if (to.Status == StatusCommented || to.Status == StatusCompleted) && to.CommentStatus != CommentPublished {
		return fmt.Errorf("%w: %s needs a published comment", ErrInvalidTransition, to.Status)
	}
	return nil
}

func contains[T comparable](items []T, v T) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

// Clarification records the option a requester picked before submitting.
type Clarification struct {
	QuestionID         string       `json:"question_id"`
	OptionID           string       `json:"option_id"`
	Label              string       `json:"label"`
	CategoryHint       rec.Category `json:"category_hint,omitempty"`
	AdditionalKeywords []string     `json:"additional_keywords"`
}

// Task is a submitted repetitive-work description and its analysis.
type Task struct {
	ID                string              `json:"id"`
	Organization      string              `json:"organization"`
	Department        string              `json:"department"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	JobDescription    string              `json:"job_description"`
	RepeatCycle       string              `json:"repeat_cycle"`
	AutomationRequest string              `json:"automation_request"`
	CurrentTools      string              `json:"current_tools,omitempty"`
	EstimatedHours    float64             `json:"estimated_hours"`
	Recommendation    *rec.Result         `json:"recommendation,omitempty"`
	Clarification     *Clarification      `json:"clarification,omitempty"`
	Category          rec.Category        `json:"task_category,omitempty"`
	AutomationLevel   rec.AutomationLevel `json:"automation_level,omitempty"`
	Status            Status              `json:"status"`
	CommentStatus     CommentStatus       `json:"coach_comment_status"`
	CoachingKey       string              `json:"-"`
	CoachingEngine    string              `json:"coaching_engine,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// State returns the task's current state.
func (t Task) State() State {
	return State{Status: t.Status, CommentStatus: t.CommentStatus}
}
