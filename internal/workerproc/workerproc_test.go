package workerproc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"automation-coach/internal/queue"
	"automation-coach/internal/tasks"
)

type recordingProcessor struct {
	taskID    string
	requestID string
	err       error
}

func (p *recordingProcessor) ProcessTask(ctx context.Context, taskID string) error {
	p.taskID = taskID
	p.requestID = tasks.RequestIDFromContext(ctx)
	return p.err
}

func TestParseMessage(t *testing.T) {
	good, err := queue.EncodeMessage(queue.NewMessage("task-1", "req-1", time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	msg, meta, err := ParseMessage(string(good))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.TaskID != "task-1" || meta.BodyLen != len(good) || len(meta.BodySHA) != 64 {
		t.Fatalf("unexpected parse result %+v %+v", msg, meta)
	}

	if _, _, err := ParseMessage("  "); !errors.As(err, new(ErrEmptyBody)) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
	if _, _, err := ParseMessage("{bad"); !errors.As(err, new(ErrDecode)) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	var missing ErrMissingTaskID
	if _, _, err := ParseMessage(`{"requestId":"req-9"}`); !errors.As(err, &missing) || missing.RequestID != "req-9" {
		t.Fatalf("expected ErrMissingTaskID with request id, got %v", err)
	}
}

func TestHandleMessagePropagatesRequestID(t *testing.T) {
	p := &recordingProcessor{}
	if err := HandleMessage(context.Background(), p, queue.Message{TaskID: "task-1", RequestID: "req-1"}); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if p.taskID != "task-1" || p.requestID != "req-1" {
		t.Fatalf("processor saw task=%q request=%q", p.taskID, p.requestID)
	}
}

func TestHandleMessageWrapsFailures(t *testing.T) {
	p := &recordingProcessor{err: fmt.Errorf("load task: %w", tasks.ErrNotFound)}
	err := HandleMessage(context.Background(), p, queue.Message{TaskID: "task-1"})

	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if !procErr.Permanent() || !errors.Is(err, tasks.ErrNotFound) {
		t.Fatalf("expected permanent not-found failure, got %v", err)
	}

	p.err = errors.New("store unavailable")
	err = HandleMessage(context.Background(), p, queue.Message{TaskID: "task-1"})
	if !errors.As(err, &procErr) || procErr.Permanent() {
		t.Fatalf("expected transient ErrProcess, got %v", err)
	}
}

func TestHandleMessageRequiresProcessorAndTaskID(t *testing.T) {
	if err := HandleMessage(context.Background(), nil, queue.Message{TaskID: "t"}); err == nil {
		t.Fatalf("expected error without processor")
	}
	if err := HandleMessage(context.Background(), &recordingProcessor{}, queue.Message{}); !errors.As(err, new(ErrMissingTaskID)) {
		t.Fatalf("expected ErrMissingTaskID, got %v", err)
	}
}
