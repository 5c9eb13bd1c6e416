package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	rec "automation-coach/internal/recommendations"
	"automation-coach/internal/shared/telemetry"
)

//go:embed seed/tools.yaml
var seedYAML []byte

type seedFile struct {
	Tools []rec.Tool `yaml:"tools"`
}

// SeedTools returns the embedded seed catalog.
func SeedTools() ([]rec.Tool, error) {
	return ParseTools(seedYAML)
}

// ParseTools decodes a YAML catalog and validates every entry.
func ParseTools(data []byte) ([]rec.Tool, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	ids := map[string]bool{}
	names := map[string]bool{}
	for i, t := range f.Tools {
		if err := Validate(t); err != nil {
			return nil, fmt.Errorf("tool %d: %w", i, err)
		}
		if ids[t.ID] || names[t.Name] {
			return nil, fmt.Errorf("tool %d: %w: duplicate id or name %q", i, ErrInvalidTool, t.Name)
		}
		ids[t.ID] = true
		names[t.Name] = true
	}
	return f.Tools, nil
}

// Validate checks the fields the engine relies on.
func Validate(t rec.Tool) error {
	switch {
	case t.ID == "" || t.Name == "":
		return fmt.Errorf("%w: id and name are required", ErrInvalidTool)
	case !t.Category.Valid():
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidTool, t.Name, t.Category)
	case !t.AutomationLevel.Valid():
		return fmt.Errorf("%w: %s has unknown automation level %q", ErrInvalidTool, t.Name, t.AutomationLevel)
	case !t.Difficulty.Valid():
		return fmt.Errorf("%w: %s has unknown difficulty %q", ErrInvalidTool, t.Name, t.Difficulty)
	case !t.PricingType.Valid():
		return fmt.Errorf("%w: %s has unknown pricing type %q", ErrInvalidTool, t.Name, t.PricingType)
	case t.Rating < 0 || t.Rating > 5:
		return fmt.Errorf("%w: %s rating %.1f out of range", ErrInvalidTool, t.Name, t.Rating)
	case t.Popularity < 0:
		return fmt.Errorf("%w: %s popularity is negative", ErrInvalidTool, t.Name)
	}
	return nil
}

// EnsureSeeded loads the seed catalog into an empty repo.
func EnsureSeeded(ctx context.Context, repo Repo) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count tools: %w", err)
	}
	if n > 0 {
		return nil
	}
	tools, err := SeedTools()
	if err != nil {
		return err
	}
	if err := repo.Upsert(ctx, tools); err != nil {
		return fmt.Errorf("seed tools: %w", err)
	}
	telemetry.Info("catalog.seeded", map[string]any{"tools": len(tools)})
	return nil
}
