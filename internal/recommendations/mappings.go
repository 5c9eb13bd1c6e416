package recommendations

type keywordMapping struct {
	trigger  string
	keywords []string
}

// keywordDictionary maps a trigger substring to the canonical keywords it implies.
// Entries are evaluated in order; the order only affects keyword list order.
var keywordDictionary = []keywordMapping{
	// documents
	{"문서", []string{"문서", "작성", "보고서"}},
	{"보고서", []string{"문서", "보고서", "작성"}},
	{"기획안", []string{"문서", "기획안", "작성", "제안서"}},
	{"제안서", []string{"문서", "제안서", "작성"}},
	{"이메일", []string{"문서", "이메일", "작성"}},
	{"회의록", []string{"회의록", "정리", "요약", "회의"}},
	{"발표", []string{"프레젠테이션", "PPT", "슬라이드", "발표"}},
	{"PPT", []string{"프레젠테이션", "PPT", "슬라이드"}},
	{"프레젠테이션", []string{"프레젠테이션", "PPT", "슬라이드"}},

	// data: general, local files, web data
	{"분석", []string{"분석", "데이터", "통계"}},
	{"데이터", []string{"데이터", "분석", "시각화"}},
	{"통계", []string{"데이터", "통계", "분석"}},
	{"차트", []string{"차트", "그래프", "시각화"}},
	{"엑셀", []string{"데이터", "엑셀", "분석", "로컬파일", "파일분석"}},
	{"CSV", []string{"데이터", "CSV", "분석", "로컬파일", "파일분석"}},
	{"스프레드시트", []string{"데이터", "엑셀", "스프레드시트", "로컬파일"}},
	{"업로드", []string{"로컬파일", "업로드", "파일분석"}},
	{"파일", []string{"로컬파일", "파일분석", "업로드"}},
	{"성과", []string{"분석", "데이터", "통계", "성과"}},
	{"모니터링", []string{"분석", "모니터링", "데이터"}},
	{"웹데이터", []string{"웹데이터", "웹분석", "크롤링", "인사이트"}},
	{"웹분석", []string{"웹데이터", "웹분석", "크롤링", "모니터링"}},
	{"검색결과", []string{"웹데이터", "검색", "인사이트", "웹분석"}},
	{"인사이트", []string{"인사이트", "분석", "웹데이터", "트렌드"}},
	{"트렌드", []string{"트렌드", "분석", "리서치"}},

	// marketing
	{"SNS", []string{"SNS", "마케팅", "게시물", "콘텐츠"}},
	{"소셜미디어", []string{"SNS", "마케팅", "게시물"}},
	{"게시물", []string{"SNS", "게시물", "콘텐츠"}},
	{"콘텐츠", []string{"콘텐츠", "마케팅", "SNS"}},
	{"광고", []string{"광고", "마케팅", "카피"}},
	{"인스타그램", []string{"SNS", "인스타그램", "마케팅"}},
	{"페이스북", []string{"SNS", "페이스북", "마케팅"}},
	{"디자인", []string{"디자인", "이미지", "SNS"}},
	{"이미지", []string{"이미지", "디자인", "생성"}},
	{"배너", []string{"디자인", "배너", "이미지"}},
	{"운영", []string{"운영", "관리", "SNS", "콘텐츠"}},
	{"계획", []string{"계획", "운영", "기획안"}},

	// automation and AI workflows
	{"자동화", []string{"자동화", "워크플로우", "자동", "AI워크플로우"}},
	{"워크플로우", []string{"워크플로우", "자동화", "프로세스", "AI워크플로우", "파이프라인"}},
	{"반복", []string{"자동화", "반복", "워크플로우", "배치"}},
	{"프로세스", []string{"프로세스", "자동화", "워크플로우"}},
	{"연동", []string{"연동", "API", "자동화"}},
	{"템플릿", []string{"템플릿", "자동화", "문서"}},
	{"AI워크플로우", []string{"자동화", "AI워크플로우", "프롬프트", "체이닝"}},
	{"프롬프트체이닝", []string{"자동화", "프롬프트", "체이닝", "AI워크플로우"}},
	{"파이프라인", []string{"자동화", "파이프라인", "워크플로우", "배치"}},
	{"오케스트레이션", []string{"자동화", "오케스트레이션", "워크플로우", "파이프라인"}},
	{"ETL", []string{"데이터", "ETL", "자동화", "파이프라인"}},

	// schedule
	{"일정", []string{"일정", "스케줄", "관리", "캘린더"}},
	{"스케줄", []string{"스케줄", "일정", "관리"}},
	{"회의", []string{"회의", "미팅", "스케줄"}},
	{"시간", []string{"시간", "일정", "관리"}},
	{"캘린더", []string{"캘린더", "일정", "스케줄"}},

	// meetings and recording
	{"녹음", []string{"녹음", "회의록", "전사"}},
	{"전사", []string{"전사", "녹음", "회의록"}},
	{"미팅", []string{"회의", "미팅", "녹음"}},

	// customer service
	{"고객", []string{"고객", "서비스", "CS"}},
	{"서비스", []string{"서비스", "고객", "CS"}},
	{"문의", []string{"문의", "고객", "서비스"}},
	{"응대", []string{"응대", "고객", "서비스"}},
	{"챗봇", []string{"챗봇", "고객", "자동화"}},

	// development
	{"코딩", []string{"코딩", "개발", "프로그래밍"}},
	{"개발", []string{"개발", "코딩", "프로그래밍"}},
	{"프로그래밍", []string{"프로그래밍", "코딩", "개발"}},
	{"앱", []string{"앱", "개발", "노코드"}},

	// research
	{"검색", []string{"검색", "리서치", "조사"}},
	{"리서치", []string{"리서치", "검색", "조사"}},
	{"조사", []string{"조사", "리서치", "검색"}},

	// image and video
	{"그림", []string{"이미지", "생성", "그림"}},
	{"영상", []string{"영상", "비디오", "생성"}},
	{"비디오", []string{"비디오", "영상", "생성"}},
	{"편집", []string{"편집", "영상", "이미지"}},

	// audio editing
	{"음량", []string{"오디오", "음량", "볼륨", "편집", "정규화"}},
	{"볼륨", []string{"오디오", "볼륨", "음량", "편집"}},
	{"오디오", []string{"오디오", "음량", "편집", "사운드"}},
	{"음향", []string{"오디오", "음향", "편집", "사운드"}},
	{"소리", []string{"오디오", "소리", "편집", "사운드"}},
	{"레벨", []string{"오디오", "레벨", "음량", "정규화"}},
	{"정규화", []string{"오디오", "정규화", "음량", "레벨통일"}},
	{"노이즈", []string{"오디오", "노이즈", "잡음제거", "편집"}},
	{"잡음", []string{"오디오", "잡음", "노이즈", "편집"}},

	// music generation
	{"음악", []string{"음악", "뮤직", "작곡", "BGM", "배경음악"}},
	{"뮤직", []string{"음악", "뮤직", "작곡", "BGM"}},
	{"작곡", []string{"음악", "작곡", "뮤직", "멜로디"}},
	{"BGM", []string{"음악", "BGM", "배경음악", "사운드"}},
	{"배경음악", []string{"음악", "배경음악", "BGM", "사운드"}},
	{"노래", []string{"음악", "노래", "보컬", "작곡"}},
	{"보컬", []string{"음악", "보컬", "노래", "가수"}},

	// crawling
	{"크롤링", []string{"크롤링", "웹스크래핑", "데이터수집", "자동화", "파이썬"}},
	{"스크래핑", []string{"크롤링", "웹스크래핑", "데이터수집", "자동화"}},
	{"웹크롤링", []string{"크롤링", "웹스크래핑", "데이터수집", "파이썬"}},
	{"수집", []string{"데이터수집", "크롤링", "자동화", "모니터링"}},

	// python
	{"파이썬", []string{"파이썬", "Python", "코딩", "자동화", "데이터분석"}},
	{"Python", []string{"파이썬", "Python", "코딩", "프로그래밍"}},
	{"Pandas", []string{"파이썬", "Pandas", "데이터분석", "시각화"}},
	{"시각화", []string{"시각화", "Matplotlib", "차트", "그래프", "데이터"}},
	{"Matplotlib", []string{"시각화", "Matplotlib", "파이썬", "차트"}},
	{"스크립트", []string{"파이썬", "스크립트", "자동화", "코딩"}},

	// browser assistants
	{"브라우저", []string{"브라우저", "Chrome", "웹", "자동화"}},
	{"어시스턴트", []string{"AI어시스턴트", "자동화", "도우미"}},
	{"웹자동화", []string{"웹자동화", "브라우저", "크롤링", "자동화"}},

	// speech synthesis
	{"TTS", []string{"TTS", "음성합성", "나레이션", "더빙", "AI보이스"}},
	{"음성합성", []string{"TTS", "음성합성", "나레이션", "AI성우"}},
	{"나레이션", []string{"나레이션", "TTS", "음성합성", "더빙"}},
	{"더빙", []string{"더빙", "TTS", "음성합성", "나레이션"}},
	{"AI성우", []string{"TTS", "AI성우", "음성합성", "나레이션"}},
	{"음성복제", []string{"음성복제", "TTS", "보이스클론", "AI보이스"}},
	{"보이스클론", []string{"보이스클론", "음성복제", "TTS"}},

	// speech recognition and subtitles
	{"STT", []string{"STT", "음성인식", "전사", "자막", "자동자막"}},
	{"음성인식", []string{"STT", "음성인식", "전사", "자막생성"}},
	{"자막", []string{"자막", "STT", "자막생성", "자동자막", "캡션"}},
	{"자막생성", []string{"자막생성", "STT", "자막", "자동자막"}},
	{"자동자막", []string{"자동자막", "STT", "자막", "음성인식"}},
	{"캡션", []string{"캡션", "자막", "STT", "자막생성"}},
	{"번역자막", []string{"번역자막", "자막", "번역", "다국어"}},
}

type categoryEvidence struct {
	category Category
	keywords []string
}

// categoryTable lists evidence keywords per category. Its order is the
// inference tie-break: the first category with the highest count wins.
var categoryTable = []categoryEvidence{
	{CategoryDocument, []string{"문서", "작성", "보고서", "기획안", "제안서", "이메일", "회의록", "프레젠테이션", "PPT", "슬라이드"}},
	{CategoryDataAnalysis, []string{"데이터", "분석", "통계", "차트", "그래프", "시각화", "성과", "Pandas", "Matplotlib"}},
	{CategoryLocalFile, []string{"엑셀", "CSV", "로컬파일", "파일분석", "업로드", "스프레드시트", "파일"}},
	{CategoryWebData, []string{"웹데이터", "웹분석", "검색결과", "인사이트", "트렌드", "웹페이지", "온라인데이터"}},
	{CategoryMarketing, []string{"SNS", "마케팅", "게시물", "콘텐츠", "광고", "카피", "디자인", "배너", "운영"}},
	{CategoryAutomation, []string{"자동화", "워크플로우", "자동", "반복", "프로세스", "연동", "API", "템플릿", "AI워크플로우", "프롬프트체이닝", "파이프라인", "ETL", "오케스트레이션"}},
	{CategorySchedule, []string{"일정", "스케줄", "캘린더", "시간", "관리"}},
	{CategoryMeeting, []string{"회의", "미팅", "녹음", "전사", "회의록", "STT", "음성인식"}},
	{CategoryImageGen, []string{"이미지", "생성", "그림", "아트", "일러스트"}},
	{CategoryVideoGen, []string{"영상", "비디오", "효과"}},
	{CategoryVideoEdit, []string{"편집", "영상", "컷편집", "자막"}},
	{CategoryAudioEdit, []string{"오디오", "음량", "볼륨", "정규화", "레벨", "음향", "소리", "노이즈", "잡음"}},
	{CategoryCustomer, []string{"고객", "서비스", "CS", "문의", "응대", "챗봇"}},
	{CategoryDevelopment, []string{"코딩", "개발", "프로그래밍", "코드", "앱", "노코드"}},
	{CategoryResearch, []string{"검색", "리서치", "조사", "트렌드", "정보"}},
	{CategoryWebCrawling, []string{"크롤링", "스크래핑", "웹스크래핑", "데이터수집", "웹자동화", "모니터링"}},
	{CategoryMusicGen, []string{"음악", "뮤직", "작곡", "BGM", "배경음악", "노래", "보컬", "멜로디"}},
	{CategoryVoiceGen, []string{"TTS", "음성합성", "나레이션", "더빙", "AI성우", "AI보이스", "음성복제", "보이스클론"}},
	{CategorySubtitle, []string{"자막", "STT", "음성인식", "전사", "자동자막", "자막생성", "번역자막"}},
	{CategoryMultiPurpose, []string{"파이썬", "Python", "스크립트", "브라우저", "AI어시스턴트"}},
}

// relatedCategories lists the tool categories that earn the hint category bonus.
var relatedCategories = map[Category][]Category{
	CategoryAudioEdit:    {CategoryVideoEdit, CategoryVideoGen, CategoryAudioEdit},
	CategoryVideoEdit:    {CategoryVideoEdit, CategoryVideoGen},
	CategoryVideoGen:     {CategoryVideoGen},
	CategoryImageGen:     {CategoryImageGen},
	CategoryDocument:     {CategoryDocument, CategoryAutomation, CategoryMultiPurpose},
	CategoryDataAnalysis: {CategoryDataAnalysis, CategoryAutomation, CategoryMultiPurpose},
	CategoryLocalFile:    {CategoryDataAnalysis, CategoryMultiPurpose},
	CategoryWebData:      {CategoryDataAnalysis, CategoryResearch, CategoryWebCrawling},
	CategoryMarketing:    {CategoryMarketing, CategoryImageGen},
	CategoryAutomation:   {CategoryAutomation, CategoryMultiPurpose},
	CategoryCustomer:     {CategoryCustomer, CategoryAutomation},
	CategoryDevelopment:  {CategoryDevelopment, CategoryAutomation, CategoryMultiPurpose},
	CategoryResearch:     {CategoryResearch, CategoryDataAnalysis, CategoryWebData},
	CategoryWebCrawling:  {CategoryDataAnalysis, CategoryAutomation, CategoryMultiPurpose, CategoryResearch, CategoryWebData},
	CategoryMusicGen:     {CategoryMusicGen},
	CategoryVoiceGen:     {CategoryVoiceGen},
	CategorySubtitle:     {CategoryVideoEdit, CategoryMeeting},
	CategoryMultiPurpose: {CategoryMultiPurpose, CategoryDocument, CategoryDataAnalysis},
}

// preferredTools ranks tool names per category; rank 0 earns the largest bonus.
var preferredTools = map[Category][]string{
	CategoryAudioEdit:    {"CapCut", "Adobe Podcast", "Descript", "Auphonic", "DaVinci Resolve", "Google Colab"},
	CategoryVideoEdit:    {"CapCut", "DaVinci Resolve", "Vrew", "Descript", "Google Colab"},
	CategoryVideoGen:     {"Google VEO 3.1", "OpenAI Sora 2", "Runway ML", "Pika Labs"},
	CategoryImageGen:     {"Nano Banana Pro", "DALL-E 3", "Midjourney", "Stable Diffusion"},
	CategoryDocument:     {"ChatGPT", "Gemini Gems", "Notion AI", "Microsoft Copilot", "Claude"},
	CategoryDataAnalysis: {"Perplexity Comet", "Gemini in Chrome", "Julius AI", "Google Colab", "ChatGPT", "Claude"},
	CategoryLocalFile:    {"Julius AI", "Google Colab", "ChatGPT", "Claude"},
	CategoryWebData:      {"Perplexity Comet", "Gemini in Chrome", "Google Colab", "Listly"},
	CategoryMarketing:    {"Gemini Gems", "ChatGPT", "Canva", "Copy.ai"},
	CategoryAutomation:   {"Google Opal", "Prefect", "Apache Airflow", "Google Apps Script", "Google Colab", "n8n", "Zapier", "Make"},
	CategoryWebCrawling:  {"Google Colab", "Perplexity Comet", "Gemini in Chrome", "Listly", "ChatGPT"},
	CategoryMusicGen:     {"MiniMax Music", "Suno AI", "Udio", "AIVA"},
	CategoryVoiceGen:     {"ElevenLabs", "Supertone", "Gemini TTS", "Qwen3 TTS", "Google AI Studio TTS"},
	CategorySubtitle:     {"Vrew", "Descript", "Clova Note", "CapCut"},
	CategoryMultiPurpose: {"Google Colab", "Google Opal", "ChatGPT", "Claude", "Gemini Gems", "Perplexity Comet"},
}

var savingsRates = map[AutomationLevel]float64{
	AutomationFull:   0.8,
	AutomationSemi:   0.6,
	AutomationAssist: 0.3,
}

// Categories returns every category in tie-break order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryTable))
	for _, entry := range categoryTable {
		out = append(out, entry.category)
	}
	return out
}

// ParseCategory validates a raw category name.
func ParseCategory(raw string) (Category, bool) {
	for _, entry := range categoryTable {
		if string(entry.category) == raw {
			return entry.category, true
		}
	}
	return "", false
}

// Valid reports whether the category is declared.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// RelatedCategories returns the categories that count as a match for a hint.
func RelatedCategories(c Category) []Category {
	return append([]Category(nil), relatedCategories[c]...)
}

// PreferredTools returns the ranked preferred tool names for a category.
func PreferredTools(c Category) []string {
	return append([]string(nil), preferredTools[c]...)
}
