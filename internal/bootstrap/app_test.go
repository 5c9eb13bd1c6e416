package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-coach/internal/llm"
	"automation-coach/internal/shared/config"
	"automation-coach/internal/tasks"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		LocalStoreDir:   t.TempDir(),
		CoachingEngine:  "auto",
		CoachingTimeout: time.Second,
		CoachName:       "디마불사",
	}
}

func TestBuildInMemory(t *testing.T) {
	app, err := Build(devConfig(t))
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Queue)
	assert.NotNil(t, app.Router)
	assert.Empty(t, app.Coaching.Clients)
	assert.NoError(t, app.Ping(context.Background()))

	n, err := app.CatalogRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Greater(t, n, 0, "catalog is seeded")
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"

	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuildWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := devConfig(t)
	cfg.RedisURL = "redis://" + mr.Addr()

	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Redis)
	assert.NoError(t, app.Ping(context.Background()))

	tools, err := app.CatalogRepo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tools)
}

func TestBuildLLMClients(t *testing.T) {
	cfg := devConfig(t)
	cfg.OpenAIAPIKey = "sk-test"
	cfg.OpenAIModel = "gpt-4o-mini"
	cfg.GeminiAPIKey = "g-test"
	cfg.GeminiModel = "gemini-2.5-flash"

	clients, err := buildLLMClients(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, llm.EngineOpenAI, clients[llm.EngineOpenAI].Name())
	assert.Equal(t, llm.EngineGemini, clients[llm.EngineGemini].Name())
}

func TestSubmittedTaskGetsFallbackCoachingInProcess(t *testing.T) {
	app, err := Build(devConfig(t))
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	task, err := app.Tasks.Create(ctx, tasks.CreateInput{
		Organization:      "에이사",
		Department:        "마케팅팀",
		Name:              "김민지",
		Email:             "minji@example.com",
		JobDescription:    "매주 인스타그램 마케팅 콘텐츠와 보고서를 작성합니다",
		RepeatCycle:       "매주",
		AutomationRequest: "SNS 게시물 작성을 자동화하고 싶어요",
		EstimatedHours:    4,
	})
	require.NoError(t, err)
	require.NotNil(t, task.Recommendation)

	require.Eventually(t, func() bool {
		detail, err := app.Tasks.Get(ctx, task.ID)
		return err == nil && len(detail.Coaching) > 0
	}, 5*time.Second, 20*time.Millisecond)

	detail, err := app.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, llm.EngineFallback, detail.CoachingEngine)
}

func TestBuildWorkerNeverEnqueues(t *testing.T) {
	cfg := devConfig(t)
	cfg.SQSQueueURL = "https://sqs.us-east-1.amazonaws.com/123/coaching"

	app, err := BuildWorker(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Queue)
	assert.Empty(t, app.Config.SQSQueueURL)
}
