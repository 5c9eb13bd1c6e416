package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Workflow and roadmap bounds requested from the model.
const (
	MinWorkflowSteps   = 3
	MaxWorkflowSteps   = 6
	MaxLearningEntries = 3
)

// ErrMalformedCoaching is returned when a provider's output is not a usable
// coaching document.
var ErrMalformedCoaching = errors.New("malformed coaching document")

// Document is the AI coaching comment attached to an analyzed task.
type Document struct {
	Summary         string         `json:"summary"`
	Workflow        []WorkflowStep `json:"workflow"`
	CoachingTips    []string       `json:"coaching_tips"`
	TimeAnalysis    TimeAnalysis   `json:"time_analysis"`
	LearningRoadmap []LearningStep `json:"learning_roadmap"`
	Conclusion      string         `json:"conclusion"`
}

// WorkflowStep is one concrete step of the suggested automation workflow.
type WorkflowStep struct {
	StepNumber      int      `json:"step_number"`
	Title           string   `json:"title"`
	ToolName        string   `json:"tool_name"`
	ToolURL         string   `json:"tool_url"`
	SpecificFeature string   `json:"specific_feature"`
	ActionItems     []string `json:"action_items"`
	ExpectedOutput  string   `json:"expected_output"`
	TimeEstimate    string   `json:"time_estimate"`
	Tips            string   `json:"tips"`
}

// TimeAnalysis compares the task before and after automation.
type TimeAnalysis struct {
	Before         string `json:"before"`
	After          string `json:"after"`
	EfficiencyGain string `json:"efficiency_gain"`
}

// LearningStep is one entry of the learning roadmap.
type LearningStep struct {
	Priority              int    `json:"priority"`
	ToolName              string `json:"tool_name"`
	Reason                string `json:"reason"`
	LearningResources     string `json:"learning_resources"`
	EstimatedLearningTime string `json:"estimated_learning_time"`
}

// DecodeCoaching parses raw model output into a Document. Markdown code fences
// are stripped; unknown fields and missing required fields are rejected.
func DecodeCoaching(raw string) (Document, error) {
	clean := StripCodeFence(raw)
	if clean == "" {
		return Document{}, fmt.Errorf("%w: empty output", ErrMalformedCoaching)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedCoaching, err)
	}
	if dec.More() {
		return Document{}, fmt.Errorf("%w: trailing data after document", ErrMalformedCoaching)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks the fields every rendered coaching document relies on.
func (d Document) Validate() error {
	var problems []string
	if strings.TrimSpace(d.Summary) == "" {
		problems = append(problems, "summary is required")
	}
	if n := len(d.Workflow); n < MinWorkflowSteps || n > MaxWorkflowSteps {
		problems = append(problems, fmt.Sprintf("workflow must have %d-%d steps, got %d", MinWorkflowSteps, MaxWorkflowSteps, n))
	}
	for i, step := range d.Workflow {
		if strings.TrimSpace(step.Title) == "" || strings.TrimSpace(step.ToolName) == "" {
			problems = append(problems, fmt.Sprintf("workflow[%d] needs title and tool_name", i))
		}
	}
	if len(d.LearningRoadmap) > MaxLearningEntries {
		problems = append(problems, fmt.Sprintf("learning_roadmap has %d entries, max %d", len(d.LearningRoadmap), MaxLearningEntries))
	}
	if strings.TrimSpace(d.Conclusion) == "" {
		problems = append(problems, "conclusion is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedCoaching, strings.Join(problems, "; "))
	}
	return nil
}

// StripCodeFence removes a surrounding ```json or ``` fence.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
