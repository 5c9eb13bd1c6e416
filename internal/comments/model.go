package comments

import "time"

// Status is the publication state of a coach comment.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known comment status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Comment is a coach's written feedback on a submitted task.
type Comment struct {
	ID               string    `json:"id"`
	TaskID           string    `json:"task_id"`
	AdditionalTools  string    `json:"additional_tools,omitempty"`
	ToolExplanation  string    `json:"tool_explanation,omitempty"`
	Tips             string    `json:"tips,omitempty"`
	LearningPriority string    `json:"learning_priority,omitempty"`
	GeneralComment   string    `json:"general_comment,omitempty"`
	Status           Status    `json:"status"`
	CoachName        string    `json:"coach_name"`
	CoachEmail       string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasContent reports whether at least one feedback field is filled in.
func (c Comment) HasContent() bool {
	for _, s := range []string{c.AdditionalTools, c.ToolExplanation, c.Tips, c.LearningPriority, c.GeneralComment} {
		if s != "" {
			return true
		}
	}
	return false
}
