package coaching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"automation-coach/internal/llm"
	"automation-coach/internal/shared/metrics"
	"automation-coach/internal/shared/storage/object"
	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/tasks"
)

// Engine modes accepted by COACHING_ENGINE.
const (
	ModeAuto   = "auto"
	ModeGemini = "gemini"
	ModeOpenAI = "openai"
	ModeBoth   = "both"
)

// DefaultTimeout bounds the provider calls for one task.
const DefaultTimeout = 90 * time.Second

// ErrNoRecommendation is returned for tasks that were never analyzed.
var ErrNoRecommendation = errors.New("task has no recommendation")

// Record is the coaching document as stored for a task.
type Record struct {
	TaskID        string       `json:"task_id"`
	Engine        string       `json:"engine"`
	Fallback      bool         `json:"fallback"`
	Selection     Selection    `json:"selection"`
	PromptVersion string       `json:"prompt_version"`
	PromptHash    string       `json:"prompt_hash,omitempty"`
	GeneratedAt   time.Time    `json:"generated_at"`
	Document      llm.Document `json:"document"`
}

// Service generates and stores coaching documents for analyzed tasks.
type Service struct {
	Tasks     tasks.Repo
	Store     object.Store
	Clients   map[string]llm.Client
	Mode      string
	Timeout   time.Duration
	CoachName string
	Fallbacks *Fallbacks
	Now       func() time.Time
}

type attempt struct {
	engine string
	doc    llm.Document
	hash   string
	err    error
}

// ProcessTask writes the coaching document of a task. Tasks that already have
// one are skipped so redelivered jobs are harmless.
func (s *Service) ProcessTask(ctx context.Context, taskID string) error {
	start := metrics.NowMillis()
	requestID := tasks.RequestIDFromContext(ctx)

	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("load task %s: %w", taskID, err)
	}
	if task.CoachingKey != "" {
		telemetry.Info("coaching.skipped", map[string]any{"task_id": taskID, "request_id": requestID, "engine": task.CoachingEngine})
		return nil
	}
	if task.Recommendation == nil {
		return fmt.Errorf("task %s: %w", taskID, ErrNoRecommendation)
	}

	in := promptInput(task, s.CoachName)
	selection := SelectEngine(task.Recommendation.Category, task.Recommendation.Keywords, task.AutomationRequest, task.JobDescription)

	record := Record{
		TaskID:        taskID,
		Selection:     selection,
		PromptVersion: llm.PromptVersion,
	}
	if winner, ok := s.generate(ctx, taskID, requestID, in, selection); ok {
		record.Engine = winner.engine
		record.Document = winner.doc
		record.PromptHash = winner.hash
	} else {
		fallbacks, err := s.fallbacks()
		if err != nil {
			return err
		}
		metrics.IncCoachingFallback()
		record.Engine = llm.EngineFallback
		record.Fallback = true
		record.Document = fallbacks.Generate(in)
	}
	record.GeneratedAt = s.now()

	key := object.CoachingKey(taskID)
	if err := object.PutJSON(ctx, s.Store, key, record); err != nil {
		return fmt.Errorf("store coaching for %s: %w", taskID, err)
	}
	if err := s.Tasks.SetCoaching(ctx, taskID, key, record.Engine); err != nil {
		return fmt.Errorf("record coaching for %s: %w", taskID, err)
	}

	duration := metrics.NowMillis() - start
	metrics.ObserveCoachingDurationMs(duration)
	telemetry.Info("coaching.stored", map[string]any{
		"task_id":     taskID,
		"request_id":  requestID,
		"engine":      record.Engine,
		"selected":    selection.Engine,
		"confidence":  selection.Confidence,
		"fallback":    record.Fallback,
		"duration_ms": duration,
	})
	return nil
}

// generate asks the configured providers for a document and returns the
// preferred valid one.
func (s *Service) generate(ctx context.Context, taskID, requestID string, in llm.PromptInput, selection Selection) (attempt, bool) {
	engines := s.engineOrder(selection.Engine)
	if len(engines) == 0 {
		return attempt{}, false
	}
	prompt, err := llm.BuildCoachingPrompt(in)
	if err != nil {
		telemetry.Error("coaching.prompt_failed", map[string]any{"task_id": taskID, "error": err.Error()})
		return attempt{}, false
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make([]attempt, len(engines))
	var g errgroup.Group
	for i, engine := range engines {
		g.Go(func() error {
			results[i] = s.call(callCtx, engine, taskID, requestID, prompt)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err == nil {
			return r, true
		}
	}
	return attempt{}, false
}

func (s *Service) call(ctx context.Context, engine, taskID, requestID, prompt string) attempt {
	metrics.IncCoachingStarted(engine)
	client := llm.WithRetry(s.Clients[engine], taskID, requestID)

	var hash string
	raw, err := client.Complete(llm.WithPromptHashSink(ctx, &hash), prompt)
	if err == nil {
		var doc llm.Document
		doc, err = llm.DecodeCoaching(raw)
		if err == nil {
			metrics.IncCoachingCompleted(engine)
			return attempt{engine: engine, doc: doc, hash: hash}
		}
	}

	metrics.IncCoachingFailed(engine)
	telemetry.Warn("coaching.engine_failed", map[string]any{
		"task_id":    taskID,
		"request_id": requestID,
		"engine":     engine,
		"malformed":  errors.Is(err, llm.ErrMalformedCoaching),
		"error":      err.Error(),
	})
	return attempt{engine: engine, err: err}
}

// engineOrder lists the configured engines to call, preferred first.
func (s *Service) engineOrder(selected string) []string {
	other := llm.EngineOpenAI
	if selected == llm.EngineOpenAI {
		other = llm.EngineGemini
	}

	var wanted []string
	switch s.Mode {
	case ModeGemini:
		wanted = []string{llm.EngineGemini}
	case ModeOpenAI:
		wanted = []string{llm.EngineOpenAI}
	case ModeBoth:
		wanted = []string{selected, other}
	default:
		wanted = []string{selected}
		if s.Clients[selected] == nil {
			wanted = []string{other}
		}
	}

	out := wanted[:0]
	for _, engine := range wanted {
		if s.Clients[engine] != nil {
			out = append(out, engine)
		}
	}
	return out
}

func (s *Service) fallbacks() (*Fallbacks, error) {
	if s.Fallbacks != nil {
		return s.Fallbacks, nil
	}
	return DefaultFallbacks()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func promptInput(task tasks.Task, coachName string) llm.PromptInput {
	return llm.PromptInput{
		CoachName:         coachName,
		Name:              task.Name,
		Organization:      task.Organization,
		Department:        task.Department,
		JobDescription:    task.JobDescription,
		RepeatCycle:       task.RepeatCycle,
		AutomationRequest: task.AutomationRequest,
		CurrentTools:      task.CurrentTools,
		EstimatedHours:    task.EstimatedHours,
		Recommendation:    *task.Recommendation,
	}
}

var _ tasks.CoachingProcessor = (*Service)(nil)
