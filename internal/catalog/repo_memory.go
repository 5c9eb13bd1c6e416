package catalog

import (
	"context"
	"sync"

	rec "automation-coach/internal/recommendations"
)

// MemoryRepo stores the catalog in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]rec.Tool
}

// NewMemoryRepo constructs a MemoryRepo holding tools.
func NewMemoryRepo(tools ...rec.Tool) *MemoryRepo {
	r := &MemoryRepo{byID: make(map[string]rec.Tool, len(tools))}
	for _, t := range tools {
		r.byID[t.ID] = t
	}
	return r
}

func (r *MemoryRepo) ListActive(ctx context.Context) ([]rec.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]rec.Tool, 0, len(r.byID))
	for _, t := range r.byID {
		if t.Active {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()
	SortTools(out)
	return out, nil
}

func (r *MemoryRepo) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	tools, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return CountByCategory(tools), nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, tools []rec.Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, t := range tools {
		if err := Validate(t); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		r.byID[t.ID] = t
	}
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
