package clarification

import (
	"errors"
	"fmt"

	rec "automation-coach/internal/recommendations"
)

var (
	ErrUnknownQuestion = errors.New("unknown clarification question")
	ErrUnknownOption   = errors.New("unknown clarification option")
)

// Request is the original free-text input a clarification refines.
type Request struct {
	JobDescription    string `json:"job_description"`
	AutomationRequest string `json:"automation_request"`
}

// Applied is a request enriched by a chosen option.
type Applied struct {
	EnhancedJobDescription    string       `json:"enhanced_job_description"`
	EnhancedAutomationRequest string       `json:"enhanced_automation_request"`
	AdditionalKeywords        []string     `json:"additional_keywords"`
	SuggestedCategory         rec.Category `json:"suggested_category,omitempty"`
}

// ApplyClarificationChoice folds the chosen option into the request. The job
// description is kept as is; the option label is appended to the request.
func ApplyClarificationChoice(original Request, option Option) Applied {
	keywords := make([]string, len(option.Keywords))
	copy(keywords, option.Keywords)
	return Applied{
		EnhancedJobDescription:    original.JobDescription,
		EnhancedAutomationRequest: fmt.Sprintf("%s [구체화: %s]", original.AutomationRequest, option.Label),
		AdditionalKeywords:        keywords,
		SuggestedCategory:         option.CategoryHint,
	}
}

// Hint converts the applied choice into the engine's hint form.
func (a Applied) Hint() *rec.ClarificationHint {
	return &rec.ClarificationHint{
		CategoryHint:       a.SuggestedCategory,
		AdditionalKeywords: a.AdditionalKeywords,
	}
}

// Resolve looks up an option by question and option id.
func Resolve(questionID, optionID string) (Option, error) {
	q, ok := QuestionByID(questionID)
	if !ok {
		return Option{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	opt, ok := q.Option(optionID)
	if !ok {
		return Option{}, fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	return opt, nil
}
