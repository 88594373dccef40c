package worker

import (
	"context"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// MessageProcessor processes one queue message.
type MessageProcessor func(ctx context.Context, msg queue.Message) error

// Mirrors service.WebhookProcessor - defined here to avoid import cycles.
type WebhookProcessor interface {
	ProcessEvent(ctx context.Context, eventLogID int64) error
}

// Mirrors service.AutomationService.Run.
type AutomationRunner interface {
	Run(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64) error
}

// Mirrors service.CallService.Summarize.
type CallSummarizer interface {
	Summarize(ctx context.Context, callID int64) error
}

// BodyFetcher loads and stores a message body for the prefetcher.
type BodyFetcher interface {
	FetchBody(ctx context.Context, messageID int64) error
}
