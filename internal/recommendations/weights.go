package recommendations

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights holds the tunable constants of the tool scorer.
type Weights struct {
	RatingMultiplier float64 `yaml:"rating_multiplier"`
	KeywordMatch     float64 `yaml:"keyword_match"`

	BeginnerBonus     float64 `yaml:"beginner_bonus"`
	IntermediateBonus float64 `yaml:"intermediate_bonus"`
	AdvancedBonus     float64 `yaml:"advanced_bonus"`

	FreeBonus     float64 `yaml:"free_bonus"`
	FreemiumBonus float64 `yaml:"freemium_bonus"`
	PaidBonus     float64 `yaml:"paid_bonus"`

	PopularityDivisor float64 `yaml:"popularity_divisor"`

	HintCategoryMatch float64 `yaml:"hint_category_match"`
	PreferredTop      float64 `yaml:"preferred_top"`
	PreferredStep     float64 `yaml:"preferred_step"`
	PreferredFloor    float64 `yaml:"preferred_floor"`
	HintKeywordMatch  float64 `yaml:"hint_keyword_match"`

	TopN int `yaml:"top_n"`
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		RatingMultiplier:  5,
		KeywordMatch:      3,
		BeginnerBonus:     3,
		IntermediateBonus: 1,
		AdvancedBonus:     0,
		FreeBonus:         2,
		FreemiumBonus:     1,
		PaidBonus:         0,
		PopularityDivisor: 50,
		HintCategoryMatch: 30,
		PreferredTop:      40,
		PreferredStep:     5,
		PreferredFloor:    10,
		HintKeywordMatch:  5,
		TopN:              5,
	}
}

// Validate rejects weights that would break ranking.
func (w Weights) Validate() error {
	if w.PopularityDivisor <= 0 {
		return fmt.Errorf("popularity_divisor must be positive, got %v", w.PopularityDivisor)
	}
	if w.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", w.TopN)
	}
	if w.PreferredFloor > w.PreferredTop {
		return fmt.Errorf("preferred_floor %v exceeds preferred_top %v", w.PreferredFloor, w.PreferredTop)
	}
	return nil
}

// PreferredBonus returns the bonus for a preferred tool at the given 0-based rank.
func (w Weights) PreferredBonus(rank int) float64 {
	bonus := w.PreferredTop - float64(rank)*w.PreferredStep
	if bonus < w.PreferredFloor {
		return w.PreferredFloor
	}
	return bonus
}

// ParseWeights overlays YAML values on top of DefaultWeights.
func ParseWeights(data []byte) (Weights, error) {
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// LoadWeights reads a YAML weights file. An empty path yields DefaultWeights.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights: %w", err)
	}
	return ParseWeights(data)
}
