package llm

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	rec "automation-coach/internal/recommendations"
)

// PromptVersion identifies the coaching prompt template in logs and stored documents.
const PromptVersion = "coaching_v1"

// DefaultCoachName is the persona the prompt speaks as.
const DefaultCoachName = "디마불사"

//go:embed prompts/*.tmpl
var promptFS embed.FS

var coachingTemplate = template.Must(template.New("coaching_v1.tmpl").Funcs(template.FuncMap{
	"join":  strings.Join,
	"inc":   func(i int) int { return i + 1 },
	"hours": FormatHours,
}).ParseFS(promptFS, "prompts/coaching_v1.tmpl"))

// PromptInput is everything the coaching prompt describes.
type PromptInput struct {
	CoachName         string
	Name              string
	Organization      string
	Department        string
	JobDescription    string
	RepeatCycle       string
	AutomationRequest string
	CurrentTools      string
	EstimatedHours    float64
	Recommendation    rec.Result
}

// BuildCoachingPrompt renders the coaching prompt for a task and its recommendation.
func BuildCoachingPrompt(in PromptInput) (string, error) {
	if strings.TrimSpace(in.CoachName) == "" {
		in.CoachName = DefaultCoachName
	}
	data := struct {
		PromptInput
		MinSteps   int
		MaxSteps   int
		MaxRoadmap int
	}{in, MinWorkflowSteps, MaxWorkflowSteps, MaxLearningEntries}

	var buf bytes.Buffer
	if err := coachingTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render coaching prompt: %w", err)
	}
	return buf.String(), nil
}

// FormatHours prints hours without trailing zeros (4, 2.5, 1.25).
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
