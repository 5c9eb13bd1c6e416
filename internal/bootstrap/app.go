package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	googleauth "automation-coach/internal/auth"
	"automation-coach/internal/catalog"
	"automation-coach/internal/coaching"
	"automation-coach/internal/comments"
	"automation-coach/internal/llm"
	"automation-coach/internal/llm/gemini"
	"automation-coach/internal/llm/openai"
	"automation-coach/internal/queue"
	rec "automation-coach/internal/recommendations"
	"automation-coach/internal/shared/config"
	"automation-coach/internal/shared/server"
	"automation-coach/internal/shared/storage/db"
	"automation-coach/internal/shared/storage/object"
	localstore "automation-coach/internal/shared/storage/object/local"
	s3store "automation-coach/internal/shared/storage/object/s3"
	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/tasks"
)

const defaultRegion = "us-east-1"

// App holds shared dependencies for the API, the worker and coachctl.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	DB          *sql.DB
	Redis       *redis.Client
	Store       object.Store
	Queue       queue.Client
	Engine      *rec.Engine
	CatalogRepo catalog.Repo
	TasksRepo   tasks.Repo
	CommentRepo comments.Repo
	Tasks       *tasks.Service
	Comments    *comments.Service
	Coaching    *coaching.Service
	GoogleAuth  *googleauth.GoogleService
}

// Build prepares dependencies for the API process.
func Build(cfg config.Config) (*App, error) {
	return build(cfg, db.DefaultServerOptions())
}

// BuildWorker prepares dependencies for the coaching worker. The worker
// consumes the queue, so it never enqueues.
func BuildWorker(cfg config.Config) (*App, error) {
	cfg.SQSQueueURL = ""
	return build(cfg, db.DefaultWorkerOptions())
}

func build(cfg config.Config, dbOpts db.Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.AWSRegion) == "" {
		cfg.AWSRegion = defaultRegion
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg, dbOpts)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	weights, err := rec.LoadWeights(cfg.EngineWeightsFile)
	if err != nil {
		return nil, err
	}
	app.Engine = rec.New(weights)

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		return nil, err
	}
	if app.Queue, err = buildQueue(ctx, cfg); err != nil {
		return nil, err
	}

	if err := buildRepos(ctx, app); err != nil {
		app.Close()
		return nil, err
	}
	if err := buildServices(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		CatalogHandler: catalog.NewHandler(app.CatalogRepo),
		TaskHandler:    tasks.NewHandler(app.Tasks),
		CommentHandler: comments.NewHandler(app.Comments),
		GoogleAuth:     app.GoogleAuth,
		Ready: func(c *gin.Context) error {
			return app.Ping(c.Request.Context())
		},
	})

	return app, nil
}

// Ping checks the backing stores that were configured.
func (a *App) Ping(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases connections opened by Build.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_missing", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(opts))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_connect_failed", map[string]any{"fallback": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func buildRepos(ctx context.Context, app *App) error {
	var catalogRepo catalog.Repo
	if app.DB != nil {
		catalogRepo = &catalog.PGRepo{DB: app.DB}
		app.TasksRepo = &tasks.PGRepo{DB: app.DB}
		app.CommentRepo = &comments.PGRepo{DB: app.DB}
	} else {
		catalogRepo = catalog.NewMemoryRepo()
		app.TasksRepo = tasks.NewMemoryRepo()
		app.CommentRepo = comments.NewMemoryRepo()
	}

	if url := strings.TrimSpace(app.Config.RedisURL); url != "" {
		client, err := catalog.NewRedisClient(url)
		if err != nil {
			return err
		}
		app.Redis = client
		catalogRepo = catalog.NewCachedRepo(catalogRepo, client, app.Config.CatalogCacheTTL)
	}
	app.CatalogRepo = catalogRepo

	return catalog.EnsureSeeded(ctx, app.CatalogRepo)
}

func buildServices(ctx context.Context, app *App) error {
	cfg := app.Config

	clients, err := buildLLMClients(ctx, cfg)
	if err != nil {
		return err
	}
	fallbacks, err := coaching.DefaultFallbacks()
	if err != nil {
		return err
	}

	app.Coaching = &coaching.Service{
		Tasks:     app.TasksRepo,
		Store:     app.Store,
		Clients:   clients,
		Mode:      cfg.CoachingEngine,
		Timeout:   cfg.CoachingTimeout,
		CoachName: cfg.CoachName,
		Fallbacks: fallbacks,
	}

	app.Tasks = &tasks.Service{
		Repo:     app.TasksRepo,
		Catalog:  app.CatalogRepo,
		Engine:   app.Engine,
		Comments: app.CommentRepo,
		Store:    app.Store,
		Queue:    app.Queue,
		Coaching: app.Coaching,
	}
	app.Comments = &comments.Service{
		Repo:      app.CommentRepo,
		Tasks:     app.Tasks,
		CoachName: cfg.CoachName,
	}
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		UIRedirect:   cfg.UIRedirectURL,
		CoachEmails:  cfg.CoachEmails,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":         cfg.Env,
		"database":    app.DB != nil,
		"redis":       app.Redis != nil,
		"queue":       app.Queue != nil,
		"store":       cfg.ObjectStoreType,
		"engine_mode": cfg.CoachingEngine,
		"llm_clients": len(clients),
	})
	return nil
}

// buildLLMClients returns one client per provider with a configured key.
func buildLLMClients(ctx context.Context, cfg config.Config) (map[string]llm.Client, error) {
	clients := map[string]llm.Client{}
	if key := strings.TrimSpace(cfg.OpenAIAPIKey); key != "" {
		client, err := openai.NewClient(key, cfg.OpenAIModel, cfg.CoachingTimeout)
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		clients[llm.EngineOpenAI] = client
	}
	if key := strings.TrimSpace(cfg.GeminiAPIKey); key != "" {
		client, err := gemini.NewClient(ctx, key, gemini.Options{Model: cfg.GeminiModel, Timeout: cfg.CoachingTimeout})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		clients[llm.EngineGemini] = client
	}
	return clients, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
