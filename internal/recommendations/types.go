package recommendations

// Category is a task category used to route recommendations.
type Category string

const (
	CategoryDocument     Category = "문서작성"
	CategoryDataAnalysis Category = "데이터분석"
	CategoryLocalFile    Category = "로컬파일분석"
	CategoryWebData      Category = "웹데이터분석"
	CategoryMarketing    Category = "마케팅"
	CategoryAutomation   Category = "업무자동화"
	CategorySchedule     Category = "일정관리"
	CategoryMeeting      Category = "회의"
	CategoryImageGen     Category = "이미지생성"
	CategoryVideoGen     Category = "영상생성"
	CategoryVideoEdit    Category = "영상편집"
	CategoryAudioEdit    Category = "오디오편집"
	CategoryCustomer     Category = "고객서비스"
	CategoryDevelopment  Category = "개발"
	CategoryResearch     Category = "리서치"
	CategoryWebCrawling  Category = "웹크롤링"
	CategoryMusicGen     Category = "음악생성"
	CategoryVoiceGen     Category = "음성생성"
	CategorySubtitle     Category = "자막생성"
	CategoryMultiPurpose Category = "다목적"
)

// DefaultCategory is returned when no keyword provides evidence for any category.
const DefaultCategory = CategoryDocument

// AutomationLevel describes how much of a task a tool can take over.
type AutomationLevel string

const (
	AutomationFull   AutomationLevel = "full"
	AutomationSemi   AutomationLevel = "semi"
	AutomationAssist AutomationLevel = "assist"
)

// Valid reports whether the level is one of the known values.
func (l AutomationLevel) Valid() bool {
	switch l {
	case AutomationFull, AutomationSemi, AutomationAssist:
		return true
	}
	return false
}

// Difficulty is the learning curve of a tool.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether the difficulty is one of the known values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// PricingType is the pricing model of a tool.
type PricingType string

const (
	PricingFree     PricingType = "free"
	PricingFreemium PricingType = "freemium"
	PricingPaid     PricingType = "paid"
)

// Valid reports whether the pricing type is one of the known values.
func (p PricingType) Valid() bool {
	switch p {
	case PricingFree, PricingFreemium, PricingPaid:
		return true
	}
	return false
}

// Tool is a catalog entry that can be recommended.
type Tool struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Category        Category        `json:"category" yaml:"category"`
	Subcategory     string          `json:"subcategory,omitempty" yaml:"subcategory"`
	Description     string          `json:"description" yaml:"description"`
	URL             string          `json:"website_url,omitempty" yaml:"url"`
	UseCases        []string        `json:"use_cases" yaml:"use_cases"`
	Keywords        []string        `json:"keywords" yaml:"keywords"`
	AutomationLevel AutomationLevel `json:"automation_level" yaml:"automation_level"`
	Difficulty      Difficulty      `json:"difficulty" yaml:"difficulty"`
	PricingType     PricingType     `json:"pricing_type" yaml:"pricing_type"`
	PricingDetail   string          `json:"pricing_detail,omitempty" yaml:"pricing_detail"`
	Rating          float64         `json:"rating" yaml:"rating"`
	Popularity      int             `json:"popularity" yaml:"popularity"`
	Active          bool            `json:"is_active" yaml:"active"`
}

// ScoredTool is a tool with its score for one recommendation request.
type ScoredTool struct {
	Tool            Tool     `json:"tool"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Reason          string   `json:"reason"`
}

// TimeSaving is the estimated effect of automating a task.
type TimeSaving struct {
	Percentage int     `json:"percentage"`
	SavedHours float64 `json:"saved_hours"`
	NewHours   float64 `json:"new_hours"`
}

// Result is the output of RecommendTools.
type Result struct {
	Category         Category        `json:"category"`
	Keywords         []string        `json:"keywords"`
	RecommendedTools []ScoredTool    `json:"recommended_tools"`
	AutomationLevel  AutomationLevel `json:"automation_level"`
	TimeSaving       TimeSaving      `json:"time_saving"`
}

// ClarificationHint carries the outcome of a clarification round trip.
type ClarificationHint struct {
	CategoryHint       Category `json:"category_hint,omitempty"`
	AdditionalKeywords []string `json:"additional_keywords,omitempty"`
}
