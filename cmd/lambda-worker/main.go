package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"automation-coach/internal/bootstrap"
	"automation-coach/internal/shared/config"
	"automation-coach/internal/shared/metrics"
	"automation-coach/internal/shared/telemetry"
	"automation-coach/internal/workerproc"
)

var loadApp = sync.OnceValues(func() (*bootstrap.App, error) {
	return bootstrap.BuildWorker(config.Load())
})

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	app, err := loadApp()
	if err != nil {
		telemetry.Error("lambda_worker.bootstrap_failed", map[string]any{"error": err.Error()})
		return retryAll(event), err
	}
	return handleEvent(ctx, app.Coaching, event), nil
}

// handleEvent reports transient failures back to SQS as batch item failures.
// Messages that can never succeed are acknowledged so they do not cycle
// until the redrive policy moves them.
func handleEvent(ctx context.Context, processor workerproc.Processor, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		metrics.IncJobsReceived()
		fields := map[string]any{"sqs_message_id": record.MessageId}

		msg, _, err := workerproc.ParseMessage(record.Body)
		if err != nil {
			fields["error"] = err.Error()
			telemetry.Error("lambda_worker.unparseable", fields)
			metrics.IncJobsDeletedUnrecoverable()
			continue
		}
		fields["task_id"] = msg.TaskID
		fields["request_id"] = msg.RequestID

		if err := workerproc.HandleMessage(ctx, processor, msg); err != nil {
			fields["error"] = err.Error()
			telemetry.Error("lambda_worker.failed", fields)
			metrics.IncJobsFailed()

			var procErr workerproc.ErrProcess
			if errors.As(err, &procErr) && procErr.Permanent() {
				metrics.IncJobsDeletedUnrecoverable()
				continue
			}
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
			continue
		}
		telemetry.Info("lambda_worker.completed", fields)
		metrics.IncJobsCompleted()
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func retryAll(event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
	for _, record := range event.Records {
		failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	defer telemetry.Sync()
	lambda.Start(handler)
}
