package comments

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores comments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byTask map[string][]Comment
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byTask: make(map[string][]Comment)}
}

func (r *MemoryRepo) Create(ctx context.Context, comment Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTask[comment.TaskID] = append(r.byTask[comment.TaskID], comment)
	return nil
}

func (r *MemoryRepo) LatestPublished(ctx context.Context, taskID string) (Comment, error) {
	list, err := r.ListByTask(ctx, taskID)
	if err != nil {
		return Comment{}, err
	}
	for _, c := range list {
		if c.Status == StatusPublished {
			return c, nil
		}
	}
	return Comment{}, ErrNotFound
}

// ListByTask returns a task's comments, newest first.
func (r *MemoryRepo) ListByTask(ctx context.Context, taskID string) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	list := make([]Comment, len(r.byTask[taskID]))
	copy(list, r.byTask[taskID])
	r.mu.RUnlock()

	// Reverse insertion order first so equal timestamps still list newest first.
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
