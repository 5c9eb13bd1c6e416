package coaching

import (
	"strings"
	"testing"

	"automation-coach/internal/llm"
	rec "automation-coach/internal/recommendations"
)

func TestSelectEngine(t *testing.T) {
	tests := []struct {
		name       string
		category   rec.Category
		keywords   []string
		job        string
		request    string
		engine     string
		confidence int
		reason     string
	}{
		{
			name:       "development favors openai",
			category:   rec.CategoryDevelopment,
			keywords:   []string{"개발", "코드"},
			job:        "사내 시스템 개발",
			request:    "API 연동 스크립트 작성",
			engine:     llm.EngineOpenAI,
			confidence: 100,
			reason:     "GPT-4o-mini 선택: 감지된 키워드: 개발, 코드, API, 스크립트, 개발: 코드 및 기술 분석에 GPT가 더 정확",
		},
		{
			name:       "creative marketing favors gemini",
			category:   rec.CategoryMarketing,
			keywords:   []string{"마케팅", "SNS"},
			job:        "인스타그램 마케팅 콘텐츠 기획",
			request:    "새로운 캠페인 아이디어가 필요해요",
			engine:     llm.EngineGemini,
			confidence: 100,
			reason:     "Gemini 선택: 감지된 키워드: 마케팅, SNS, 콘텐츠, 인스타그램, 아이디어, 마케팅: 마케팅 콘텐츠 생성에 Gemini가 더 창의적",
		},
		{
			name:       "no evidence leans on low creativity",
			category:   rec.CategoryMultiPurpose,
			engine:     llm.EngineOpenAI,
			confidence: 67,
			reason:     "GPT-4o-mini 선택: 분석적/논리적 접근이 필요한 요청",
		},
		{
			name:       "tie goes to gemini",
			category:   rec.CategoryMultiPurpose,
			request:    "새로운 sql json",
			engine:     llm.EngineGemini,
			confidence: 50,
			reason:     "Gemini 선택: 일반적인 요청에 적합",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectEngine(tt.category, tt.keywords, tt.request, tt.job)
			if got.Engine != tt.engine {
				t.Fatalf("engine = %s, want %s (factors %+v)", got.Engine, tt.engine, got.Factors)
			}
			if got.Confidence != tt.confidence {
				t.Fatalf("confidence = %d, want %d (factors %+v)", got.Confidence, tt.confidence, got.Factors)
			}
			if got.Reason != tt.reason {
				t.Fatalf("reason = %q, want %q", got.Reason, tt.reason)
			}
		})
	}
}

func TestSelectEngineFactors(t *testing.T) {
	got := SelectEngine(rec.CategoryDevelopment, []string{"개발", "코드"}, "API 연동 스크립트 작성", "사내 시스템 개발")

	names := make([]string, 0, len(got.Factors))
	for _, f := range got.Factors {
		names = append(names, f.Name)
	}
	// Complexity lands in the medium band (two technical terms) and adds no factor.
	want := "업무 카테고리,키워드 분석,창의성 요구"
	if strings.Join(names, ",") != want {
		t.Fatalf("factors = %v, want %s", names, want)
	}
	if got.Factors[1].Weight != 55 || got.Factors[1].Favors != llm.EngineOpenAI {
		t.Fatalf("unexpected keyword factor %+v", got.Factors[1])
	}
}

func TestSelectEngineCaseFoldsKeywords(t *testing.T) {
	got := SelectEngine(rec.CategoryDevelopment, []string{"api"}, "", "")
	var kw *Factor
	for i := range got.Factors {
		if got.Factors[i].Name == "키워드 분석" {
			kw = &got.Factors[i]
		}
	}
	if kw == nil || kw.Description != "감지된 키워드: API" {
		t.Fatalf("expected API keyword factor, got %+v", got.Factors)
	}
}

func TestComplexityScore(t *testing.T) {
	long := strings.Repeat("가", 201)
	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: strings.Repeat("가", 101), want: 10},
		{text: long, want: 20},
		{text: "sql과 json, api", want: 30},
		{text: "주 3시간 소요", want: 10},
	}
	for _, tt := range tests {
		if got := complexityScore(tt.text); got != tt.want {
			t.Fatalf("complexityScore(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCreativityScore(t *testing.T) {
	if got := creativityScore("새로운 아이디어로 sns 광고 캠페인"); got != 2*15+3*10 {
		t.Fatalf("unexpected creativity score %d", got)
	}
}
