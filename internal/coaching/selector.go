package coaching

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"automation-coach/internal/llm"
	rec "automation-coach/internal/recommendations"
)

// Factor is one piece of evidence considered when choosing an engine.
type Factor struct {
	Name        string `json:"factor"`
	Weight      int    `json:"weight"`
	Favors      string `json:"favors"`
	Description string `json:"description"`
}

// Selection is the engine chosen for a task and why.
type Selection struct {
	Engine     string   `json:"selected_engine"`
	Reason     string   `json:"reason"`
	Confidence int      `json:"confidence"`
	Factors    []Factor `json:"factors"`
}

const favorsNeutral = "neutral"

type preference struct {
	engine string
	weight int
	reason string
}

var categoryPreferences = map[rec.Category]preference{
	rec.CategoryMarketing:    {llm.EngineGemini, 30, "마케팅 콘텐츠 생성에 Gemini가 더 창의적"},
	rec.CategoryImageGen:     {llm.EngineGemini, 20, "이미지 관련 설명에 Gemini가 더 적합"},
	rec.CategoryVideoGen:     {llm.EngineGemini, 20, "영상 콘텐츠 기획에 Gemini 활용"},
	rec.CategoryResearch:     {llm.EngineGemini, 15, "최신 정보 검색에 Gemini 강점"},
	rec.CategoryDevelopment:  {llm.EngineOpenAI, 35, "코드 및 기술 분석에 GPT가 더 정확"},
	rec.CategoryDataAnalysis: {llm.EngineOpenAI, 30, "데이터 분석 및 구조화에 GPT 강점"},
	rec.CategoryAutomation:   {llm.EngineOpenAI, 25, "워크플로우 설계에 GPT의 논리적 접근"},
	rec.CategoryDocument:     {llm.EngineGemini, 10, "문서 작성은 둘 다 우수 (Gemini 약간 선호)"},
	rec.CategorySchedule:     {llm.EngineOpenAI, 10, "일정 관리는 둘 다 우수 (GPT 약간 선호)"},
	rec.CategoryMeeting:      {llm.EngineGemini, 10, "회의 관련은 둘 다 우수"},
	rec.CategoryCustomer:     {llm.EngineOpenAI, 15, "고객 응대 스크립트에 GPT 강점"},
	rec.CategoryAudioEdit:    {llm.EngineOpenAI, 20, "기술적 오디오 처리 설명에 GPT 강점"},
}

type keywordPreference struct {
	keyword string
	engine  string
	weight  int
}

// Ordered: the text scan reports matches in this order.
var keywordPreferences = []keywordPreference{
	{"코드", llm.EngineOpenAI, 15},
	{"코딩", llm.EngineOpenAI, 15},
	{"개발", llm.EngineOpenAI, 15},
	{"API", llm.EngineOpenAI, 15},
	{"데이터베이스", llm.EngineOpenAI, 12},
	{"데이터", llm.EngineOpenAI, 10},
	{"분석", llm.EngineOpenAI, 10},
	{"통계", llm.EngineOpenAI, 10},
	{"엑셀", llm.EngineOpenAI, 8},
	{"자동화", llm.EngineOpenAI, 8},
	{"워크플로우", llm.EngineOpenAI, 8},
	{"스크립트", llm.EngineOpenAI, 10},
	{"정규화", llm.EngineOpenAI, 10},
	{"오디오", llm.EngineOpenAI, 8},
	{"레벨", llm.EngineOpenAI, 8},
	{"콘텐츠", llm.EngineGemini, 12},
	{"마케팅", llm.EngineGemini, 12},
	{"SNS", llm.EngineGemini, 12},
	{"인스타그램", llm.EngineGemini, 10},
	{"페이스북", llm.EngineGemini, 10},
	{"유튜브", llm.EngineGemini, 10},
	{"블로그", llm.EngineGemini, 10},
	{"카피", llm.EngineGemini, 12},
	{"광고", llm.EngineGemini, 10},
	{"아이디어", llm.EngineGemini, 15},
	{"창의", llm.EngineGemini, 15},
	{"브레인스토밍", llm.EngineGemini, 15},
	{"기획", llm.EngineGemini, 10},
	{"디자인", llm.EngineGemini, 10},
	{"이미지", llm.EngineGemini, 8},
	{"영상", llm.EngineGemini, 8},
	{"트렌드", llm.EngineGemini, 12},
}

var (
	technicalTerms = regexp.MustCompile(`(?i)API|데이터베이스|SQL|JSON|XML|스크립트|코드|함수|변수|알고리즘|정규화|노멀라이즈`)
	quantityTerms  = regexp.MustCompile(`\d+%|\d+시간|\d+개|\d+건`)
	creativeTerms  = regexp.MustCompile(`(?i)아이디어|창의|새로운|독특|트렌드|영감|브레인스토밍|기획|컨셉|스토리|콘텐츠`)
	marketingTerms = regexp.MustCompile(`(?i)마케팅|홍보|광고|캠페인|SNS|인스타|페이스북|유튜브`)
)

// Score thresholds for the complexity and creativity factors.
const (
	complexThreshold      = 40
	simpleThreshold       = 20
	highCreativity        = 30
	lowCreativity         = 15
	maxKeywordDescription = 5
)

// SelectEngine picks the provider best suited to write coaching for a task.
// Gemini wins ties.
func SelectEngine(category rec.Category, keywords []string, automationRequest, jobDescription string) Selection {
	var factors []Factor
	scores := map[string]int{}

	if pref, ok := categoryPreferences[category]; ok {
		scores[pref.engine] += pref.weight
		factors = append(factors, Factor{
			Name:        "업무 카테고리",
			Weight:      pref.weight,
			Favors:      pref.engine,
			Description: fmt.Sprintf("%s: %s", category, pref.reason),
		})
	}

	text := strings.ToLower(jobDescription + " " + automationRequest)
	kwScores, matched := keywordEvidence(keywords, text)
	scores[llm.EngineGemini] += kwScores[llm.EngineGemini]
	scores[llm.EngineOpenAI] += kwScores[llm.EngineOpenAI]
	if len(matched) > 0 {
		g, o := kwScores[llm.EngineGemini], kwScores[llm.EngineOpenAI]
		favors := favorsNeutral
		switch {
		case g > o:
			favors = llm.EngineGemini
		case o > g:
			favors = llm.EngineOpenAI
		}
		shown := matched
		if len(shown) > maxKeywordDescription {
			shown = shown[:maxKeywordDescription]
		}
		factors = append(factors, Factor{
			Name:        "키워드 분석",
			Weight:      max(g, o),
			Favors:      favors,
			Description: "감지된 키워드: " + strings.Join(shown, ", "),
		})
	}

	switch complexity := complexityScore(text); {
	case complexity >= complexThreshold:
		scores[llm.EngineOpenAI] += 15
		factors = append(factors, Factor{Name: "복잡도", Weight: 15, Favors: llm.EngineOpenAI, Description: "복잡한 요청으로 GPT의 구조화된 분석 선호"})
	case complexity < simpleThreshold:
		scores[llm.EngineGemini] += 5
		factors = append(factors, Factor{Name: "복잡도", Weight: 5, Favors: llm.EngineGemini, Description: "단순한 요청으로 빠른 응답 선호"})
	}

	switch creativity := creativityScore(text); {
	case creativity >= highCreativity:
		scores[llm.EngineGemini] += 20
		factors = append(factors, Factor{Name: "창의성 요구", Weight: 20, Favors: llm.EngineGemini, Description: "창의적 아이디어가 필요한 요청"})
	case creativity < lowCreativity:
		scores[llm.EngineOpenAI] += 10
		factors = append(factors, Factor{Name: "창의성 요구", Weight: 10, Favors: llm.EngineOpenAI, Description: "분석적/논리적 접근이 필요한 요청"})
	}

	gemini, openai := scores[llm.EngineGemini], scores[llm.EngineOpenAI]
	selected := llm.EngineGemini
	if openai > gemini {
		selected = llm.EngineOpenAI
	}
	confidence := 50
	if total := gemini + openai; total > 0 {
		confidence = int(math.Round(float64(max(gemini, openai)) / float64(total) * 100))
	}

	return Selection{
		Engine:     selected,
		Reason:     selectionReason(selected, factors),
		Confidence: confidence,
		Factors:    factors,
	}
}

// keywordEvidence scores extracted keywords first, then scans the text for
// preference keywords not already counted.
func keywordEvidence(keywords []string, text string) (map[string]int, []string) {
	scores := map[string]int{}
	var matched []string
	seen := map[string]bool{}
	for _, kw := range keywords {
		for _, pref := range keywordPreferences {
			if strings.EqualFold(kw, pref.keyword) && !seen[pref.keyword] {
				scores[pref.engine] += pref.weight
				matched = append(matched, pref.keyword)
				seen[pref.keyword] = true
				break
			}
		}
	}
	for _, pref := range keywordPreferences {
		if seen[pref.keyword] || !strings.Contains(text, strings.ToLower(pref.keyword)) {
			continue
		}
		scores[pref.engine] += pref.weight
		matched = append(matched, pref.keyword)
		seen[pref.keyword] = true
	}
	return scores, matched
}

func complexityScore(text string) int {
	score := 0
	switch n := utf8.RuneCountInString(text); {
	case n > 200:
		score += 20
	case n > 100:
		score += 10
	}
	score += len(technicalTerms.FindAllStringIndex(text, -1)) * 10
	if quantityTerms.MatchString(text) {
		score += 10
	}
	return score
}

func creativityScore(text string) int {
	return len(creativeTerms.FindAllStringIndex(text, -1))*15 +
		len(marketingTerms.FindAllStringIndex(text, -1))*10
}

func selectionReason(engine string, factors []Factor) string {
	var favoring []Factor
	for _, f := range factors {
		if f.Favors == engine {
			favoring = append(favoring, f)
		}
	}
	sort.SliceStable(favoring, func(i, j int) bool { return favoring[i].Weight > favoring[j].Weight })
	if len(favoring) > 2 {
		favoring = favoring[:2]
	}
	parts := make([]string, 0, len(favoring))
	for _, f := range favoring {
		parts = append(parts, f.Description)
	}
	detail := strings.Join(parts, ", ")
	if detail == "" {
		detail = "일반적인 요청에 적합"
	}
	label := "Gemini"
	if engine == llm.EngineOpenAI {
		label = "GPT-4o-mini"
	}
	return label + " 선택: " + detail
}
