package comments

import "context"

// Repo defines persistence operations for coach comments.
type Repo interface {
	Create(ctx context.Context, comment Comment) error
	// LatestPublished returns the newest published comment of a task or ErrNotFound.
	LatestPublished(ctx context.Context, taskID string) (Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]Comment, error)
}
