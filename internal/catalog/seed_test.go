package catalog

import (
	"context"
	"errors"
	"testing"

	rec "automation-coach/internal/recommendations"
)

func TestSeedToolsValid(t *testing.T) {
	tools, err := SeedTools()
	if err != nil {
		t.Fatalf("SeedTools: %v", err)
	}
	if len(tools) != 30 {
		t.Fatalf("expected 30 seed tools, got %d", len(tools))
	}
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if !tool.Active {
			t.Fatalf("seed tool %s should be active", tool.Name)
		}
		if len(tool.Keywords) == 0 || len(tool.UseCases) == 0 {
			t.Fatalf("seed tool %s lacks keywords or use cases", tool.Name)
		}
	}
	for _, want := range []string{"ChatGPT", "Julius AI", "Google Colab", "Perplexity Comet", "Listly", "Zapier", "CapCut", "Vrew", "ElevenLabs", "Suno AI"} {
		if !names[want] {
			t.Fatalf("seed catalog is missing %s", want)
		}
	}
}

func TestParseToolsRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"unknown category": `
tools:
  - {id: a, name: A, category: 요리, automation_level: semi, difficulty: beginner, pricing_type: free, rating: 4}
`,
		"duplicate id": `
tools:
  - {id: a, name: A, category: 회의, automation_level: semi, difficulty: beginner, pricing_type: free, rating: 4}
  - {id: a, name: B, category: 회의, automation_level: semi, difficulty: beginner, pricing_type: free, rating: 4}
`,
		"rating out of range": `
tools:
  - {id: a, name: A, category: 회의, automation_level: semi, difficulty: beginner, pricing_type: free, rating: 7}
`,
		"bad level": `
tools:
  - {id: a, name: A, category: 회의, automation_level: total, difficulty: beginner, pricing_type: free, rating: 4}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseTools([]byte(doc)); !errors.Is(err, ErrInvalidTool) {
				t.Fatalf("expected ErrInvalidTool, got %v", err)
			}
		})
	}
	if _, err := ParseTools([]byte("tools: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestEnsureSeededOnlyFillsEmptyRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	if err := EnsureSeeded(ctx, repo); err != nil {
		t.Fatalf("EnsureSeeded: %v", err)
	}
	n, _ := repo.Count(ctx)
	if n != 30 {
		t.Fatalf("expected 30 tools, got %d", n)
	}

	custom := NewMemoryRepo(rec.Tool{ID: "x", Name: "X", Category: rec.CategoryMeeting, AutomationLevel: rec.AutomationSemi, Difficulty: rec.DifficultyBeginner, PricingType: rec.PricingFree, Active: true})
	if err := EnsureSeeded(ctx, custom); err != nil {
		t.Fatalf("EnsureSeeded: %v", err)
	}
	if n, _ := custom.Count(ctx); n != 1 {
		t.Fatalf("non-empty repo should not be seeded, got %d tools", n)
	}
}
