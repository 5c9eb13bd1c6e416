package clarification

import (
	"reflect"
	"testing"
)

func TestAnalyzeVagueAudioRequest(t *testing.T) {
	res := AnalyzeForClarification("소리가 이상해요", "좀 고쳐주세요")
	if !res.NeedsClarification {
		t.Fatalf("expected clarification, got %+v", res)
	}
	if res.AmbiguityScore != 60 {
		t.Fatalf("expected score 60, got %d", res.AmbiguityScore)
	}
	if len(res.Questions) != 1 || res.Questions[0].ID != "audio_type" {
		t.Fatalf("expected audio_type question, got %+v", res.Questions)
	}
	if !reflect.DeepEqual(res.DetectedAmbiguities, []string{"오디오 작업 유형 불명확"}) {
		t.Fatalf("unexpected ambiguities: %v", res.DetectedAmbiguities)
	}
	if len(res.OriginalKeywords) != 0 {
		t.Fatalf("expected no baseline keywords, got %v", res.OriginalKeywords)
	}
}

func TestAnalyzeDetailedRequestBelowThreshold(t *testing.T) {
	res := AnalyzeForClarification(
		"매주 월요일마다 지점별 매출 엑셀 파일을 ChatGPT에 붙여넣어 지점별 합계와 전주 대비 증감률을 계산합니다",
		"계산 결과를 팀장님께 메일로 공유합니다",
	)
	if res.AmbiguityScore != 20 {
		t.Fatalf("expected score 20, got %d", res.AmbiguityScore)
	}
	if res.NeedsClarification {
		t.Fatalf("detailed request should not need clarification")
	}
	if len(res.Questions) != 1 || res.Questions[0].ID != "data_type" {
		t.Fatalf("questions are still reported: %+v", res.Questions)
	}
}

func TestAnalyzeCompoundSuppressesSingles(t *testing.T) {
	res := AnalyzeForClarification("유튜브 영상 소리 크기가 제각각이에요", "")
	if len(res.Questions) != 1 || res.Questions[0].ID != "youtube_audio" {
		t.Fatalf("expected only the compound question, got %+v", res.Questions)
	}
	if !reflect.DeepEqual(res.DetectedAmbiguities, []string{compoundAmbiguity}) {
		t.Fatalf("unexpected ambiguities: %v", res.DetectedAmbiguities)
	}
	if res.AmbiguityScore != 50 || !res.NeedsClarification {
		t.Fatalf("expected score 50 with clarification, got %d/%v", res.AmbiguityScore, res.NeedsClarification)
	}
	if !reflect.DeepEqual(res.OriginalKeywords, []string{"영상", "유튜브"}) {
		t.Fatalf("unexpected keywords: %v", res.OriginalKeywords)
	}
}

func TestAnalyzeCompoundIsCaseInsensitive(t *testing.T) {
	res := AnalyzeForClarification("YouTube 녹음", "")
	if len(res.Questions) != 1 || res.Questions[0].ID != "youtube_audio" {
		t.Fatalf("expected youtube_audio, got %+v", res.Questions)
	}
}

func TestAnalyzeCapsQuestionsAndScore(t *testing.T) {
	res := AnalyzeForClarification("문서 작성하고 이미지 만들고 영상 편집하고 데이터 분석 자동화", "")
	if res.AmbiguityScore != maxScore {
		t.Fatalf("expected capped score, got %d", res.AmbiguityScore)
	}
	if len(res.Questions) != MaxQuestions {
		t.Fatalf("expected %d questions, got %d", MaxQuestions, len(res.Questions))
	}
	if res.Questions[0].ID != "video_type" || res.Questions[1].ID != "document_type" {
		t.Fatalf("questions out of table order: %s, %s", res.Questions[0].ID, res.Questions[1].ID)
	}
	if len(res.DetectedAmbiguities) != 5 {
		t.Fatalf("all ambiguities should be reported, got %v", res.DetectedAmbiguities)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res := AnalyzeForClarification("", "")
	if res.NeedsClarification {
		t.Fatalf("empty input has no questions to ask")
	}
	if res.AmbiguityScore != 30 {
		t.Fatalf("expected score 30, got %d", res.AmbiguityScore)
	}
	if res.Questions == nil || res.DetectedAmbiguities == nil || res.OriginalKeywords == nil {
		t.Fatalf("slices should be empty, not nil")
	}
}

func TestPatternTables(t *testing.T) {
	ids := map[string]bool{}
	check := func(q Question) {
		if ids[q.ID] {
			t.Fatalf("duplicate question id %s", q.ID)
		}
		ids[q.ID] = true
		if len(q.Options) != 4 {
			t.Fatalf("question %s has %d options", q.ID, len(q.Options))
		}
		for _, opt := range q.Options {
			if ids[opt.ID] {
				t.Fatalf("duplicate option id %s", opt.ID)
			}
			ids[opt.ID] = true
			if !opt.CategoryHint.Valid() {
				t.Fatalf("option %s has invalid category %q", opt.ID, opt.CategoryHint)
			}
			if len(opt.Keywords) == 0 {
				t.Fatalf("option %s has no keywords", opt.ID)
			}
		}
	}
	for _, c := range compoundPatterns {
		check(c.question)
	}
	for _, s := range singlePatterns {
		check(s.question)
	}
	if len(singlePatterns) != 12 || len(compoundPatterns) != 2 {
		t.Fatalf("unexpected table sizes %d/%d", len(singlePatterns), len(compoundPatterns))
	}
}
