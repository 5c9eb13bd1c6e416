package clarification

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// NeedsClarificationScore is the ambiguity score at which questions are asked.
	NeedsClarificationScore = 30
	// MaxQuestions caps the questions returned per analysis.
	MaxQuestions = 2

	patternWeight   = 20
	shortTextRunes  = 30
	mediumTextRunes = 50
	shortTextBonus  = 20
	mediumTextBonus = 10
	noToolBonus     = 10
	vagueBonus      = 10
	maxScore        = 100
)

// Result is the outcome of an ambiguity analysis.
type Result struct {
	NeedsClarification  bool       `json:"needs_clarification"`
	AmbiguityScore      int        `json:"ambiguity_score"`
	DetectedAmbiguities []string   `json:"detected_ambiguities"`
	Questions           []Question `json:"questions"`
	OriginalKeywords    []string   `json:"original_keywords"`
}

// AnalyzeForClarification decides whether a request is too vague to recommend
// for and, if so, which questions would disambiguate it. Compound patterns win
// over single ones; single patterns are only consulted when no compound matched.
func AnalyzeForClarification(jobDescription, automationRequest string) Result {
	text := jobDescription + " " + automationRequest

	res := Result{
		DetectedAmbiguities: []string{},
		Questions:           []Question{},
		OriginalKeywords:    baselineKeywordsIn(text),
	}
	seen := map[string]bool{}
	matched := 0

	for _, c := range compoundPatterns {
		if !matchesAll(c.patterns, text) {
			continue
		}
		matched++
		res.DetectedAmbiguities = append(res.DetectedAmbiguities, compoundAmbiguity)
		if !seen[c.question.ID] {
			seen[c.question.ID] = true
			res.Questions = append(res.Questions, c.question)
		}
	}

	if matched == 0 {
		for _, s := range singlePatterns {
			if !s.pattern.MatchString(text) {
				continue
			}
			matched++
			res.DetectedAmbiguities = append(res.DetectedAmbiguities, s.ambiguity)
			if !seen[s.question.ID] {
				seen[s.question.ID] = true
				res.Questions = append(res.Questions, s.question)
			}
		}
	}

	res.AmbiguityScore = score(text, matched)
	res.NeedsClarification = len(res.Questions) > 0 && res.AmbiguityScore >= NeedsClarificationScore
	if len(res.Questions) > MaxQuestions {
		res.Questions = res.Questions[:MaxQuestions]
	}
	return res
}

func score(text string, matched int) int {
	s := matched * patternWeight
	switch n := utf8.RuneCountInString(strings.TrimSpace(text)); {
	case n < shortTextRunes:
		s += shortTextBonus
	case n < mediumTextRunes:
		s += mediumTextBonus
	}
	if !toolMentionPattern.MatchString(text) {
		s += noToolBonus
	}
	if vagueRequestPattern.MatchString(text) {
		s += vagueBonus
	}
	if s > maxScore {
		s = maxScore
	}
	return s
}

func matchesAll(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if !p.MatchString(text) {
			return false
		}
	}
	return true
}

func baselineKeywordsIn(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, kw := range baselineKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			out = append(out, kw)
		}
	}
	return out
}
