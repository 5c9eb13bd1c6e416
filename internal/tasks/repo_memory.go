package tasks

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores tasks in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Task
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Task)}
}

func (r *MemoryRepo) Create(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[task.ID] = task
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, taskID string) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.byID[taskID]
	if !ok {
		return Task{}, ErrNotFound
	}
	return task, nil
}

func (r *MemoryRepo) ListByEmail(ctx context.Context, email string, limit, offset int) ([]Task, error) {
	return r.list(ctx, limit, offset, func(t Task) bool { return t.Email == email })
}

func (r *MemoryRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Task, error) {
	return r.list(ctx, limit, offset, func(t Task) bool { return status == "" || t.Status == status })
}

func (r *MemoryRepo) list(ctx context.Context, limit, offset int, keep func(Task) bool) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	matched := make([]Task, 0)
	for _, t := range r.byID {
		if keep(t) {
			matched = append(matched, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	if offset >= len(matched) {
		return []Task{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

func (r *MemoryRepo) UpdateState(ctx context.Context, taskID string, from, to State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.byID[taskID]
	if !ok {
		return ErrNotFound
	}
	if task.State() != from {
		return ErrConflict
	}
	task.Status = to.Status
	task.CommentStatus = to.CommentStatus
	task.UpdatedAt = time.Now().UTC()
	r.byID[taskID] = task
	return nil
}

func (r *MemoryRepo) SetCoaching(ctx context.Context, taskID, key, engine string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.byID[taskID]
	if !ok {
		return ErrNotFound
	}
	task.CoachingKey = key
	task.CoachingEngine = engine
	task.UpdatedAt = time.Now().UTC()
	r.byID[taskID] = task
	return nil
}
