package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"

	"automation-coach/internal/coaching"
	"automation-coach/internal/queue"
)

type fakeProcessor struct {
	errs map[string]error
}

func (f fakeProcessor) ProcessTask(ctx context.Context, taskID string) error {
	return f.errs[taskID]
}

func record(t *testing.T, id, taskID string) events.SQSMessage {
	t.Helper()
	body, err := queue.EncodeMessage(queue.NewMessage(taskID, "req-"+id, time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	return events.SQSMessage{MessageId: id, Body: string(body)}
}

func TestHandleEventReportsOnlyTransientFailures(t *testing.T) {
	processor := fakeProcessor{errs: map[string]error{
		"flaky":   errors.New("object store unavailable"),
		"no-recs": fmt.Errorf("task no-recs: %w", coaching.ErrNoRecommendation),
	}}
	event := events.SQSEvent{Records: []events.SQSMessage{
		record(t, "m1", "ok"),
		record(t, "m2", "flaky"),
		record(t, "m3", "no-recs"),
		{MessageId: "m4", Body: "{bad"},
	}}

	resp := handleEvent(context.Background(), processor, event)

	assert.Equal(t, []events.SQSBatchItemFailure{{ItemIdentifier: "m2"}}, resp.BatchItemFailures)
}

func TestRetryAll(t *testing.T) {
	resp := retryAll(events.SQSEvent{Records: []events.SQSMessage{{MessageId: "a"}, {MessageId: "b"}}})
	assert.Len(t, resp.BatchItemFailures, 2)
}
