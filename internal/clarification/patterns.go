package clarification

import (
	"regexp"

	rec "automation-coach/internal/recommendations"
)

// Option is one answer to a clarification question.
type Option struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Keywords     []string     `json:"keywords"`
	CategoryHint rec.Category `json:"category_hint,omitempty"`
}

// Question asks the requester to pick one of mutually exclusive options.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

type compoundPattern struct {
	key      string
	patterns []*regexp.Regexp
	question Question
}

type singlePattern struct {
	key       string
	pattern   *regexp.Regexp
	ambiguity string
	question  Question
}

const compoundAmbiguity = "복합 영역 요청 감지"

// compoundPatterns need every regexp to match and take priority over singles.
var compoundPatterns = []compoundPattern{
	{
		key: "youtube_audio",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)유튜브|youtube`),
			regexp.MustCompile(`(?i)녹음|음향|소리`),
		},
		question: Question{
			ID:       "youtube_audio",
			Question: "유튜브 콘텐츠의 어떤 부분을 개선하고 싶으신가요?",
			Options: []Option{
				{ID: "yt_audio_level", Label: "여러 영상의 음량 레벨을 통일하고 싶어요", Keywords: []string{"오디오", "정규화", "레벨통일", "음량"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "yt_audio_quality", Label: "음성 품질을 개선하고 싶어요", Keywords: []string{"음질향상", "잡음제거", "오디오향상"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "yt_video_edit", Label: "영상 자체를 편집하고 싶어요", Keywords: []string{"영상편집", "컷편집", "효과"}, CategoryHint: rec.CategoryVideoGen},
				{ID: "yt_subtitle", Label: "자막을 추가하거나 수정하고 싶어요", Keywords: []string{"자막", "캡션", "번역"}, CategoryHint: rec.CategoryVideoGen},
			},
		},
	},
	{
		key: "sns_content",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SNS|인스타|페이스북|소셜`),
			regexp.MustCompile(`(?i)콘텐츠|게시물|포스팅`),
		},
		question: Question{
			ID:       "sns_content",
			Question: "SNS 콘텐츠의 어떤 작업이 필요하신가요?",
			Options: []Option{
				{ID: "sns_text", Label: "게시물 텍스트/카피를 작성하고 싶어요", Keywords: []string{"카피", "텍스트", "SNS글"}, CategoryHint: rec.CategoryMarketing},
				{ID: "sns_image", Label: "이미지/디자인을 만들고 싶어요", Keywords: []string{"SNS이미지", "디자인", "배너"}, CategoryHint: rec.CategoryImageGen},
				{ID: "sns_schedule", Label: "게시 일정을 관리하고 싶어요", Keywords: []string{"스케줄", "예약", "게시관리"}, CategoryHint: rec.CategorySchedule},
				{ID: "sns_analyze", Label: "성과를 분석하고 싶어요", Keywords: []string{"성과분석", "인사이트", "통계"}, CategoryHint: rec.CategoryDataAnalysis},
			},
		},
	},
}

// singlePatterns are evaluated in order when no compound pattern matched.
var singlePatterns = []singlePattern{
	{
		key:       "audio",
		pattern:   regexp.MustCompile(`(?i)음향|소리|오디오|볼륨|녹음.*맞추|소리.*다르|음향.*틀리|레벨|음량`),
		ambiguity: "오디오 작업 유형 불명확",
		question: Question{
			ID:       "audio_type",
			Question: "어떤 오디오 작업이 필요하신가요?",
			Options: []Option{
				{ID: "audio_normalize", Label: "여러 파일의 음량(볼륨) 레벨을 통일하고 싶어요", Keywords: []string{"오디오", "정규화", "노멀라이즈", "레벨", "음량"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "audio_quality", Label: "음질을 개선하고 싶어요 (잡음 제거, 선명도 향상)", Keywords: []string{"오디오", "향상", "잡음제거", "음질"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "audio_edit", Label: "오디오를 편집하고 싶어요 (자르기, 합치기)", Keywords: []string{"오디오", "편집", "컷", "병합"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "audio_transcribe", Label: "음성을 텍스트로 변환하고 싶어요", Keywords: []string{"전사", "자막", "STT", "음성인식"}, CategoryHint: rec.CategoryMeeting},
			},
		},
	},
	{
		key:       "video",
		pattern:   regexp.MustCompile(`(?i)영상|비디오|동영상|유튜브|편집.*영상|영상.*편집`),
		ambiguity: "영상 작업 유형 불명확",
		question: Question{
			ID:       "video_type",
			Question: "어떤 영상 작업이 필요하신가요?",
			Options: []Option{
				{ID: "video_create", Label: "새로운 영상을 AI로 생성하고 싶어요", Keywords: []string{"영상", "생성", "AI영상"}, CategoryHint: rec.CategoryVideoGen},
				{ID: "video_edit", Label: "기존 영상을 편집하고 싶어요 (자르기, 효과 추가)", Keywords: []string{"영상", "편집", "효과", "컷"}, CategoryHint: rec.CategoryVideoGen},
				{ID: "video_subtitle", Label: "자막을 추가하거나 번역하고 싶어요", Keywords: []string{"자막", "번역", "캡션"}, CategoryHint: rec.CategoryVideoGen},
				{ID: "video_thumbnail", Label: "썸네일 이미지를 만들고 싶어요", Keywords: []string{"썸네일", "이미지", "디자인"}, CategoryHint: rec.CategoryImageGen},
			},
		},
	},
	{
		key:       "document",
		pattern:   regexp.MustCompile(`(?i)문서|작성|보고서|기획|제안서`),
		ambiguity: "문서 작업 유형 불명확",
		question: Question{
			ID:       "document_type",
			Question: "어떤 문서 작업이 필요하신가요?",
			Options: []Option{
				{ID: "doc_create", Label: "새 문서 초안을 AI로 작성하고 싶어요", Keywords: []string{"문서", "초안", "작성", "AI작성"}, CategoryHint: rec.CategoryDocument},
				{ID: "doc_summarize", Label: "기존 문서를 요약하거나 정리하고 싶어요", Keywords: []string{"요약", "정리", "문서분석"}, CategoryHint: rec.CategoryDocument},
				{ID: "doc_format", Label: "문서 형식/디자인을 개선하고 싶어요", Keywords: []string{"포맷", "디자인", "템플릿"}, CategoryHint: rec.CategoryDocument},
				{ID: "doc_translate", Label: "문서를 번역하고 싶어요", Keywords: []string{"번역", "다국어", "현지화"}, CategoryHint: rec.CategoryDocument},
			},
		},
	},
	{
		key:       "image",
		pattern:   regexp.MustCompile(`(?i)이미지|그림|디자인|사진|배너|포스터`),
		ambiguity: "이미지 작업 유형 불명확",
		question: Question{
			ID:       "image_type",
			Question: "어떤 이미지 작업이 필요하신가요?",
			Options: []Option{
				{ID: "img_create", Label: "새로운 이미지를 AI로 생성하고 싶어요", Keywords: []string{"이미지", "생성", "AI이미지"}, CategoryHint: rec.CategoryImageGen},
				{ID: "img_edit", Label: "기존 이미지를 편집하고 싶어요", Keywords: []string{"이미지", "편집", "보정"}, CategoryHint: rec.CategoryImageGen},
				{ID: "img_remove_bg", Label: "배경을 제거하거나 교체하고 싶어요", Keywords: []string{"배경제거", "누끼", "배경교체"}, CategoryHint: rec.CategoryImageGen},
				{ID: "img_design", Label: "마케팅용 디자인 (배너, 포스터)을 만들고 싶어요", Keywords: []string{"디자인", "배너", "포스터", "마케팅"}, CategoryHint: rec.CategoryMarketing},
			},
		},
	},
	{
		key:       "automation",
		pattern:   regexp.MustCompile(`(?i)자동화|자동으로|반복.*업무|업무.*반복|워크플로우|파이프라인`),
		ambiguity: "자동화 대상 불명확",
		question: Question{
			ID:       "automation_type",
			Question: "어떤 종류의 업무를 자동화하고 싶으신가요?",
			Options: []Option{
				{ID: "auto_ai_workflow", Label: "AI 기반 워크플로우를 만들고 싶어요 (프롬프트 체이닝)", Keywords: []string{"AI워크플로우", "프롬프트", "체이닝", "Opal", "자동화"}, CategoryHint: rec.CategoryAutomation},
				{ID: "auto_python", Label: "파이썬으로 데이터 파이프라인을 만들고 싶어요", Keywords: []string{"파이썬", "파이프라인", "ETL", "Prefect", "Airflow", "오케스트레이션"}, CategoryHint: rec.CategoryAutomation},
				{ID: "auto_app_connect", Label: "여러 앱 간의 연동을 자동화하고 싶어요", Keywords: []string{"워크플로우", "연동", "API", "통합", "앱연동"}, CategoryHint: rec.CategoryAutomation},
				{ID: "auto_report", Label: "보고서/리포트 생성을 자동화하고 싶어요", Keywords: []string{"보고서", "리포트", "자동생성"}, CategoryHint: rec.CategoryDataAnalysis},
			},
		},
	},
	{
		key:       "customer",
		pattern:   regexp.MustCompile(`(?i)고객|문의|응대|CS|서비스`),
		ambiguity: "고객 서비스 유형 불명확",
		question: Question{
			ID:       "customer_type",
			Question: "어떤 고객 서비스 업무를 개선하고 싶으신가요?",
			Options: []Option{
				{ID: "cs_chatbot", Label: "자동 응답 챗봇을 만들고 싶어요", Keywords: []string{"챗봇", "자동응답", "FAQ"}, CategoryHint: rec.CategoryCustomer},
				{ID: "cs_template", Label: "응대 템플릿/스크립트를 만들고 싶어요", Keywords: []string{"템플릿", "스크립트", "응대"}, CategoryHint: rec.CategoryCustomer},
				{ID: "cs_analyze", Label: "고객 문의를 분석하고 싶어요", Keywords: []string{"분석", "문의분석", "인사이트"}, CategoryHint: rec.CategoryDataAnalysis},
				{ID: "cs_manage", Label: "고객 정보/이력을 관리하고 싶어요", Keywords: []string{"CRM", "고객관리", "이력"}, CategoryHint: rec.CategoryAutomation},
			},
		},
	},
	{
		key:       "data",
		pattern:   regexp.MustCompile(`(?i)데이터|분석|통계|엑셀|스프레드시트|인사이트|시각화`),
		ambiguity: "데이터 작업 유형 불명확",
		question: Question{
			ID:       "data_type",
			Question: "어떤 데이터를 분석하고 싶으신가요?",
			Options: []Option{
				{ID: "data_web", Label: "웹사이트/검색 결과 데이터를 분석하고 싶어요", Keywords: []string{"웹데이터", "웹분석", "검색결과", "인사이트", "트렌드", "웹페이지"}, CategoryHint: rec.CategoryWebData},
				{ID: "data_local", Label: "엑셀/CSV 등 파일을 업로드해서 분석하고 싶어요", Keywords: []string{"엑셀", "CSV", "로컬파일", "파일분석", "업로드", "스프레드시트"}, CategoryHint: rec.CategoryLocalFile},
				{ID: "data_visualize", Label: "차트/그래프로 시각화하고 싶어요", Keywords: []string{"시각화", "차트", "그래프", "대시보드", "Matplotlib"}, CategoryHint: rec.CategoryDataAnalysis},
				{ID: "data_collect", Label: "웹에서 데이터를 수집/크롤링하고 싶어요", Keywords: []string{"수집", "크롤링", "스크래핑", "웹자동화"}, CategoryHint: rec.CategoryWebCrawling},
			},
		},
	},
	{
		key:       "crawling",
		pattern:   regexp.MustCompile(`(?i)크롤링|스크래핑|웹.*수집|사이트.*데이터|모니터링.*자동`),
		ambiguity: "웹 데이터 수집 방식 불명확",
		question: Question{
			ID:       "crawling_type",
			Question: "어떤 방식으로 웹 데이터를 수집/활용하고 싶으신가요?",
			Options: []Option{
				{ID: "crawl_browser", Label: "AI 브라우저로 간편하게 수집하고 싶어요", Keywords: []string{"브라우저", "AI어시스턴트", "자동화", "웹검색"}, CategoryHint: rec.CategoryWebCrawling},
				{ID: "crawl_python", Label: "파이썬 코드로 직접 크롤링하고 싶어요", Keywords: []string{"파이썬", "BeautifulSoup", "크롤링", "스크래핑"}, CategoryHint: rec.CategoryMultiPurpose},
				{ID: "crawl_nocode", Label: "노코드 도구로 간단히 수집하고 싶어요", Keywords: []string{"노코드", "자동화", "Listly"}, CategoryHint: rec.CategoryAutomation},
				{ID: "crawl_monitor", Label: "웹사이트 변경사항을 모니터링하고 싶어요", Keywords: []string{"모니터링", "알림", "변경감지"}, CategoryHint: rec.CategoryAutomation},
			},
		},
	},
	{
		key:       "python",
		pattern:   regexp.MustCompile(`(?i)파이썬|python|코딩|스크립트|코드.*자동|프로그래밍`),
		ambiguity: "파이썬 활용 목적 불명확",
		question: Question{
			ID:       "python_type",
			Question: "파이썬으로 어떤 작업을 하고 싶으신가요?",
			Options: []Option{
				{ID: "py_data", Label: "데이터 분석/시각화 (Pandas, Matplotlib)", Keywords: []string{"파이썬", "Pandas", "Matplotlib", "데이터분석", "시각화"}, CategoryHint: rec.CategoryMultiPurpose},
				{ID: "py_crawl", Label: "웹 크롤링/스크래핑 (BeautifulSoup, Selenium)", Keywords: []string{"파이썬", "BeautifulSoup", "크롤링", "웹스크래핑"}, CategoryHint: rec.CategoryWebCrawling},
				{ID: "py_video", Label: "영상/오디오 처리 (moviepy, FFmpeg)", Keywords: []string{"파이썬", "moviepy", "FFmpeg", "영상처리", "오디오"}, CategoryHint: rec.CategoryMultiPurpose},
				{ID: "py_automate", Label: "업무 자동화 스크립트", Keywords: []string{"파이썬", "자동화", "스크립트", "배치"}, CategoryHint: rec.CategoryAutomation},
			},
		},
	},
	{
		key:       "music",
		pattern:   regexp.MustCompile(`(?i)음악|BGM|배경음악|작곡|뮤직|노래.*만들|사운드.*생성`),
		ambiguity: "음악/오디오 생성 목적 불명확",
		question: Question{
			ID:       "music_type",
			Question: "어떤 음악/오디오를 만들고 싶으신가요?",
			Options: []Option{
				{ID: "music_bgm", Label: "영상용 배경음악(BGM)을 만들고 싶어요", Keywords: []string{"음악", "BGM", "배경음악", "영상음악"}, CategoryHint: rec.CategoryMusicGen},
				{ID: "music_song", Label: "보컬이 있는 노래를 만들고 싶어요", Keywords: []string{"음악", "노래", "보컬", "가사"}, CategoryHint: rec.CategoryMusicGen},
				{ID: "music_effect", Label: "효과음/사운드 이펙트를 만들고 싶어요", Keywords: []string{"효과음", "사운드", "이펙트", "SFX"}, CategoryHint: rec.CategoryAudioEdit},
				{ID: "music_edit", Label: "기존 음악을 편집하고 싶어요", Keywords: []string{"음악편집", "믹싱", "마스터링"}, CategoryHint: rec.CategoryAudioEdit},
			},
		},
	},
	{
		key:       "tts",
		pattern:   regexp.MustCompile(`(?i)TTS|음성합성|나레이션|더빙|AI성우|AI보이스|음성.*생성|목소리.*만들`),
		ambiguity: "TTS/음성 합성 용도 불명확",
		question: Question{
			ID:       "tts_type",
			Question: "어떤 목적의 음성을 생성하고 싶으신가요?",
			Options: []Option{
				{ID: "tts_narration", Label: "영상/팟캐스트용 나레이션을 만들고 싶어요", Keywords: []string{"TTS", "나레이션", "팟캐스트", "음성합성"}, CategoryHint: rec.CategoryVoiceGen},
				{ID: "tts_dubbing", Label: "영상 더빙/외국어 음성을 만들고 싶어요", Keywords: []string{"TTS", "더빙", "다국어", "음성합성"}, CategoryHint: rec.CategoryVoiceGen},
				{ID: "tts_clone", Label: "특정 목소리를 복제/클론하고 싶어요", Keywords: []string{"음성복제", "보이스클론", "TTS", "AI성우"}, CategoryHint: rec.CategoryVoiceGen},
				{ID: "tts_korean", Label: "한국어 자연스러운 음성이 필요해요", Keywords: []string{"TTS", "한국어", "음성합성", "슈퍼톤"}, CategoryHint: rec.CategoryVoiceGen},
			},
		},
	},
	{
		key:       "subtitle",
		pattern:   regexp.MustCompile(`(?i)자막|STT|음성인식|전사|자동.*자막|음성.*텍스트`),
		ambiguity: "자막/음성인식 용도 불명확",
		question: Question{
			ID:       "subtitle_type",
			Question: "어떤 자막/음성인식 작업이 필요하신가요?",
			Options: []Option{
				{ID: "sub_auto", Label: "영상에 자막을 자동으로 생성하고 싶어요", Keywords: []string{"자막", "STT", "자동자막", "자막생성"}, CategoryHint: rec.CategorySubtitle},
				{ID: "sub_translate", Label: "자막을 다른 언어로 번역하고 싶어요", Keywords: []string{"자막", "번역", "다국어", "번역자막"}, CategoryHint: rec.CategorySubtitle},
				{ID: "sub_meeting", Label: "회의/강의 내용을 텍스트로 변환하고 싶어요", Keywords: []string{"STT", "전사", "회의록", "음성인식"}, CategoryHint: rec.CategoryMeeting},
				{ID: "sub_edit", Label: "자막을 편집/수정하고 싶어요", Keywords: []string{"자막편집", "자막", "타이밍", "캡션"}, CategoryHint: rec.CategoryVideoEdit},
			},
		},
	},
}

var (
	toolMentionPattern  = regexp.MustCompile(`(?i)chatgpt|gemini|canva|notion|zapier|adobe|capcut`)
	vagueRequestPattern = regexp.MustCompile(`(?i)싶어|해주|해 주|주세요|할 수 있|가능할까|어떻게|please|could you|is it possible`)
)

// baselineKeywords are surface words reported back for reference.
var baselineKeywords = []string{
	"문서", "보고서", "이메일", "데이터", "분석", "SNS", "마케팅",
	"자동화", "일정", "회의", "녹음", "이미지", "영상", "고객",
	"개발", "리서치", "음향", "오디오", "유튜브", "파이썬", "크롤링",
	"음악", "BGM", "스크립트", "코딩", "브라우저",
}

// QuestionByID finds a compound or single-pattern question.
func QuestionByID(id string) (Question, bool) {
	for _, c := range compoundPatterns {
		if c.question.ID == id {
			return c.question, true
		}
	}
	for _, s := range singlePatterns {
		if s.question.ID == id {
			return s.question, true
		}
	}
	return Question{}, false
}
