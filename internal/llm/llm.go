package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Engine names used in task records, metrics and logs.
const (
	EngineGemini   = "gemini"
	EngineOpenAI   = "openai"
	EngineFallback = "fallback"
)

// Client abstracts text-generation providers used for coaching.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type promptHashKey struct{}

// WithPromptHashSink returns a context that collects the hash of the prompt a
// provider actually sent.
func WithPromptHashSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, promptHashKey{}, sink)
}

// RecordPromptHash stores the hash of prompt into the sink carried by ctx, if any.
func RecordPromptHash(ctx context.Context, prompt string) {
	sink, ok := ctx.Value(promptHashKey{}).(*string)
	if !ok || sink == nil {
		return
	}
	*sink = HashPrompt(prompt)
}

// HashPrompt returns a stable identifier for a prompt.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
