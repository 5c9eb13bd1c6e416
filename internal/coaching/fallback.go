package coaching

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"automation-coach/internal/llm"
	rec "automation-coach/internal/recommendations"
)

//go:embed templates/fallback.yaml
var fallbackYAML []byte

const (
	fallbackToolName    = "AI 도구"
	fallbackFocus       = "관련 온라인 강의"
	roadmapSize         = 3
	fallbackToolsSource = 5
)

var learningTimes = map[rec.Difficulty]string{
	rec.DifficultyBeginner:     "30분-1시간",
	rec.DifficultyIntermediate: "1-2시간",
	rec.DifficultyAdvanced:     "2-3시간",
}

type stepTemplate struct {
	Title           string   `yaml:"title"`
	ToolName        string   `yaml:"tool_name"`
	ToolURL         string   `yaml:"tool_url"`
	SpecificFeature string   `yaml:"specific_feature"`
	ActionItems     []string `yaml:"action_items"`
	ExpectedOutput  string   `yaml:"expected_output"`
	TimeEstimate    string   `yaml:"time_estimate"`
	Tips            string   `yaml:"tips"`
}

type categoryTemplate struct {
	Category      rec.Category   `yaml:"category"`
	Summary       string         `yaml:"summary"`
	Conclusion    string         `yaml:"conclusion"`
	Workflow      []stepTemplate `yaml:"workflow"`
	CoachingTips  []string       `yaml:"coaching_tips"`
	LearningFocus []string       `yaml:"learning_focus"`
}

type fallbackFile struct {
	Version   int                           `yaml:"version"`
	Default   rec.Category                  `yaml:"default"`
	Aliases   map[rec.Category]rec.Category `yaml:"aliases"`
	Templates []categoryTemplate            `yaml:"templates"`
}

// Fallbacks builds deterministic coaching documents from per-category templates.
type Fallbacks struct {
	templates map[rec.Category]categoryTemplate
	aliases   map[rec.Category]rec.Category
	def       rec.Category
}

// ParseFallbacks loads and validates a template file.
func ParseFallbacks(data []byte) (*Fallbacks, error) {
	var file fallbackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fallback templates: %w", err)
	}

	f := &Fallbacks{
		templates: make(map[rec.Category]categoryTemplate, len(file.Templates)),
		aliases:   file.Aliases,
		def:       file.Default,
	}
	for _, t := range file.Templates {
		if _, dup := f.templates[t.Category]; dup {
			return nil, fmt.Errorf("fallback template %s defined twice", t.Category)
		}
		if n := len(t.Workflow); n < llm.MinWorkflowSteps || n > llm.MaxWorkflowSteps {
			return nil, fmt.Errorf("fallback template %s has %d workflow steps", t.Category, n)
		}
		if strings.TrimSpace(t.Summary) == "" || strings.TrimSpace(t.Conclusion) == "" {
			return nil, fmt.Errorf("fallback template %s needs summary and conclusion", t.Category)
		}
		f.templates[t.Category] = t
	}
	if _, ok := f.templates[f.def]; !ok {
		return nil, fmt.Errorf("default fallback template %q not defined", f.def)
	}
	for from, to := range f.aliases {
		if _, ok := f.templates[to]; !ok {
			return nil, fmt.Errorf("fallback alias %s points to undefined template %s", from, to)
		}
	}
	return f, nil
}

var loadDefaultFallbacks = sync.OnceValues(func() (*Fallbacks, error) {
	return ParseFallbacks(fallbackYAML)
})

// DefaultFallbacks returns the embedded template set.
func DefaultFallbacks() (*Fallbacks, error) {
	return loadDefaultFallbacks()
}

// TemplateFor returns the category whose template serves c.
func (f *Fallbacks) TemplateFor(c rec.Category) rec.Category {
	if _, ok := f.templates[c]; ok {
		return c
	}
	if to, ok := f.aliases[c]; ok {
		return to
	}
	return f.def
}

// Generate builds the fallback coaching document for a task.
func (f *Fallbacks) Generate(in llm.PromptInput) llm.Document {
	result := in.Recommendation
	tmpl := f.templates[f.TemplateFor(result.Category)]

	top := result.RecommendedTools
	if len(top) > fallbackToolsSource {
		top = top[:fallbackToolsSource]
	}
	topName := fallbackToolName
	if len(top) > 0 {
		topName = top[0].Tool.Name
	}

	saving := result.TimeSaving
	gain := fmt.Sprintf("약 %s시간(%d%%)의 시간을 절감할 수 있습니다. %s 업무의 핵심 단계를 AI가 대신 처리합니다.",
		llm.FormatHours(saving.SavedHours), saving.Percentage, result.Category)
	return llm.Document{
		Summary:      strings.ReplaceAll(tmpl.Summary, "{name}", in.Name),
		Workflow:     customizeWorkflow(tmpl.Workflow, top),
		CoachingTips: append([]string(nil), tmpl.CoachingTips...),
		TimeAnalysis: llm.TimeAnalysis{
			Before:         fmt.Sprintf("현재 %s시간 소요", llm.FormatHours(in.EstimatedHours)),
			After:          fmt.Sprintf("자동화 후 약 %s시간 소요 예상", llm.FormatHours(saving.NewHours)),
			EfficiencyGain: gain,
		},
		LearningRoadmap: learningRoadmap(top, tmpl.LearningFocus),
		Conclusion:      strings.NewReplacer("{name}", in.Name, "{tool}", topName).Replace(tmpl.Conclusion),
	}
}

// customizeWorkflow swaps template tools for recommended ones. A step keeps its
// tool when it names a recommended tool; otherwise the recommendation at the
// same position takes its place.
func customizeWorkflow(steps []stepTemplate, tools []rec.ScoredTool) []llm.WorkflowStep {
	out := make([]llm.WorkflowStep, 0, len(steps))
	for i, s := range steps {
		step := llm.WorkflowStep{
			StepNumber:      i + 1,
			Title:           s.Title,
			ToolName:        s.ToolName,
			ToolURL:         s.ToolURL,
			SpecificFeature: s.SpecificFeature,
			ActionItems:     append([]string(nil), s.ActionItems...),
			ExpectedOutput:  s.ExpectedOutput,
			TimeEstimate:    s.TimeEstimate,
			Tips:            s.Tips,
		}
		if match, ok := matchingTool(s.ToolName, tools); ok {
			step.ToolName = match.Tool.Name
			if match.Tool.URL != "" {
				step.ToolURL = match.Tool.URL
			}
			step.Tips = joinTips(match.Reason, s.Tips)
		} else if i < len(tools) {
			alt := tools[i]
			step.ToolName = alt.Tool.Name
			step.ToolURL = alt.Tool.URL
			step.Tips = joinTips(alt.Reason, s.Tips)
		}
		out = append(out, step)
	}
	return out
}

func matchingTool(stepTool string, tools []rec.ScoredTool) (rec.ScoredTool, bool) {
	for _, t := range tools {
		if t.Tool.Name == stepTool ||
			strings.Contains(string(t.Tool.Category), stepTool) ||
			strings.Contains(stepTool, t.Tool.Name) {
			return t, true
		}
	}
	return rec.ScoredTool{}, false
}

func joinTips(reason, tips string) string {
	if reason == "" {
		return tips
	}
	return reason + " " + tips
}

func learningRoadmap(tools []rec.ScoredTool, focus []string) []llm.LearningStep {
	n := min(len(tools), roadmapSize)
	out := make([]llm.LearningStep, 0, n)
	for i := range n {
		t := tools[i]
		area := fallbackFocus
		if i < len(focus) {
			area = focus[i]
		}
		learning, ok := learningTimes[t.Tool.Difficulty]
		if !ok {
			learning = learningTimes[rec.DifficultyAdvanced]
		}
		out = append(out, llm.LearningStep{
			Priority:              i + 1,
			ToolName:              t.Tool.Name,
			Reason:                t.Reason,
			LearningResources:     fmt.Sprintf("%s 공식 문서, YouTube 튜토리얼, %s", t.Tool.Name, area),
			EstimatedLearningTime: learning,
		})
	}
	return out
}
