package queue

import "context"

// Client enqueues coaching jobs. The API sends one Message per analyzed task;
// the worker consumes them.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
