package recommendations

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultEstimatedHours is used when the caller provides no positive estimate.
const DefaultEstimatedHours = 4.0

// Engine scores and ranks catalog tools. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	weights Weights
}

// New returns an Engine using the given weights. Invalid weights fall back to defaults.
func New(weights Weights) *Engine {
	if err := weights.Validate(); err != nil {
		weights = DefaultWeights()
	}
	return &Engine{weights: weights}
}

// Default returns an Engine with DefaultWeights.
func Default() *Engine {
	return &Engine{weights: DefaultWeights()}
}

// Weights returns the weights in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// ExtractKeywords returns the canonical keywords implied by text, without
// duplicates, in dictionary order.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	set := newKeywordSet(16)
	if strings.TrimSpace(lower) == "" {
		return set.list()
	}
	for _, entry := range keywordDictionary {
		if strings.Contains(lower, strings.ToLower(entry.trigger)) {
			set.add(entry.keywords...)
		}
	}
	return set.list()
}

// InferCategory returns the category with the most evidence among keywords.
// Ties go to the category declared first; no evidence yields DefaultCategory.
func InferCategory(keywords []string) Category {
	best := DefaultCategory
	bestScore := 0
	for _, entry := range categoryTable {
		score := 0
		for _, kw := range keywords {
			if containsExact(entry.keywords, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}
	return best
}

// CalculateToolScore scores a tool against keywords with DefaultWeights.
func CalculateToolScore(tool Tool, keywords []string) (float64, []string) {
	return Default().CalculateToolScore(tool, keywords)
}

// CalculateToolScore returns the base score of a tool and the keywords that matched its tags.
func (e *Engine) CalculateToolScore(tool Tool, keywords []string) (float64, []string) {
	w := e.weights
	score := tool.Rating * w.RatingMultiplier
	matched := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if matchesAnyTag(tool.Keywords, kw) {
			score += w.KeywordMatch
			matched = append(matched, kw)
		}
	}

	switch tool.Difficulty {
	case DifficultyBeginner:
		score += w.BeginnerBonus
	case DifficultyIntermediate:
		score += w.IntermediateBonus
	case DifficultyAdvanced:
		score += w.AdvancedBonus
	}

	switch tool.PricingType {
	case PricingFree:
		score += w.FreeBonus
	case PricingFreemium:
		score += w.FreemiumBonus
	case PricingPaid:
		score += w.PaidBonus
	}

	score += float64(tool.Popularity) / w.PopularityDivisor
	return score, matched
}

// GenerateReason builds the one-sentence explanation shown next to a tool.
func GenerateReason(tool Tool, matched []string) string {
	useCase := strings.TrimSpace(tool.Description)
	for _, uc := range tool.UseCases {
		if trimmed := strings.TrimSpace(uc); trimmed != "" {
			useCase = trimmed
			break
		}
	}
	if len(matched) > 0 {
		top := matched
		if len(top) > 2 {
			top = top[:2]
		}
		return fmt.Sprintf("\"%s\" 키워드와 관련된 %s에 최적화된 도구입니다.", strings.Join(top, ", "), useCase)
	}
	return fmt.Sprintf("%s에 유용한 도구입니다.", useCase)
}

// DetermineAutomationLevel derives the overall level from the ranked tools.
func DetermineAutomationLevel(tools []ScoredTool) AutomationLevel {
	full, semi := 0, 0
	for _, t := range tools {
		switch t.Tool.AutomationLevel {
		case AutomationFull:
			full++
		case AutomationSemi:
			semi++
		}
	}
	if full >= 3 {
		return AutomationFull
	}
	if full+semi >= 3 {
		return AutomationSemi
	}
	return AutomationAssist
}

// CalculateTimeSaving estimates hours saved for the given automation level.
// Unknown levels are treated as assist.
func CalculateTimeSaving(hours float64, level AutomationLevel) TimeSaving {
	rate, ok := savingsRates[level]
	if !ok {
		rate = savingsRates[AutomationAssist]
	}
	saved := roundTenth(hours * rate)
	return TimeSaving{
		Percentage: int(math.Round(rate * 100)),
		SavedHours: saved,
		NewHours:   roundTenth(hours - saved),
	}
}

// RecommendTools runs the full pipeline with DefaultWeights.
func RecommendTools(tools []Tool, jobDescription, automationRequest string, estimatedHours float64, hint *ClarificationHint) Result {
	return Default().Recommend(tools, jobDescription, automationRequest, estimatedHours, hint)
}

// Recommend extracts keywords, resolves the category, ranks active tools and
// estimates time savings. It never mutates its inputs.
func (e *Engine) Recommend(tools []Tool, jobDescription, automationRequest string, estimatedHours float64, hint *ClarificationHint) Result {
	if estimatedHours <= 0 {
		estimatedHours = DefaultEstimatedHours
	}

	set := newKeywordSet(16)
	set.add(ExtractKeywords(jobDescription + " " + automationRequest)...)
	if hint != nil {
		set.add(hint.AdditionalKeywords...)
	}
	keywords := set.list()

	category := InferCategory(keywords)
	if hint != nil && hint.CategoryHint != "" {
		category = hint.CategoryHint
	}

	ranked := e.rank(tools, keywords, category, hint)
	level := DetermineAutomationLevel(ranked)

	return Result{
		Category:         category,
		Keywords:         keywords,
		RecommendedTools: ranked,
		AutomationLevel:  level,
		TimeSaving:       CalculateTimeSaving(estimatedHours, level),
	}
}

func (e *Engine) rank(tools []Tool, keywords []string, category Category, hint *ClarificationHint) []ScoredTool {
	w := e.weights
	related := relatedCategories[category]
	preferred := preferredTools[category]

	scored := make([]ScoredTool, 0, len(tools))
	for _, tool := range tools {
		if !tool.Active {
			continue
		}
		score, matched := e.CalculateToolScore(tool, keywords)

		if hint != nil {
			if hint.CategoryHint != "" && containsCategory(related, tool.Category) {
				score += w.HintCategoryMatch
			}
			if rank := preferredRank(preferred, tool.Name); rank >= 0 {
				score += w.PreferredBonus(rank)
			}
			for _, kw := range hint.AdditionalKeywords {
				if !matchesAnyTag(tool.Keywords, kw) {
					continue
				}
				score += w.HintKeywordMatch
				if !containsExact(matched, kw) {
					matched = append(matched, kw)
				}
			}
		}

		scored = append(scored, ScoredTool{
			Tool:            cloneTool(tool),
			Score:           score,
			MatchedKeywords: matched,
			Reason:          GenerateReason(tool, matched),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > w.TopN {
		scored = scored[:w.TopN]
	}
	return scored
}

func preferredRank(preferred []string, name string) int {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if lowerName == "" {
		return -1
	}
	for i, p := range preferred {
		lp := strings.ToLower(p)
		if strings.Contains(lowerName, lp) || strings.Contains(lp, lowerName) {
			return i
		}
	}
	return -1
}

func matchesAnyTag(tags []string, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if strings.Contains(t, kw) || strings.Contains(kw, t) {
			return true
		}
	}
	return false
}

func containsExact(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

func containsCategory(items []Category, value Category) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

func cloneTool(t Tool) Tool {
	t.UseCases = append([]string(nil), t.UseCases...)
	t.Keywords = append([]string(nil), t.Keywords...)
	return t
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

type keywordSet struct {
	order []string
	seen  map[string]struct{}
}

func newKeywordSet(capacity int) *keywordSet {
	return &keywordSet{
		order: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

func (s *keywordSet) add(keywords ...string) {
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := s.seen[kw]; ok {
			continue
		}
		s.seen[kw] = struct{}{}
		s.order = append(s.order, kw)
	}
}

func (s *keywordSet) list() []string {
	return s.order
}
