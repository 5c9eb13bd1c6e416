package tasks

import "context"

// Repo defines persistence operations for tasks.
type Repo interface {
	Create(ctx context.Context, task Task) error
	GetByID(ctx context.Context, taskID string) (Task, error)
	// ListByEmail returns a requester's tasks, newest first.
	ListByEmail(ctx context.Context, email string, limit, offset int) ([]Task, error)
	// ListByStatus returns tasks newest first; an empty status lists all.
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Task, error)
	// UpdateState moves a task from one state to another and fails with
	// ErrConflict when the stored state no longer equals from.
	UpdateState(ctx context.Context, taskID string, from, to State) error
	SetCoaching(ctx context.Context, taskID, key, engine string) error
}
