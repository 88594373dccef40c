package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/internal/queue"
)

type Config struct {
	MaxAttempts int
}

// TaskHandler executes one decoded task.
type TaskHandler interface {
	Process(ctx context.Context, task queue.Task) error
}

type Worker struct {
	consumer Consumer
	handler  TaskHandler
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, handler TaskHandler, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Worker{
		consumer:  consumer,
		handler:   handler,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "switchyard.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(time.Second):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.HandleMessage(ctx, msg)
	}
	return nil
}

// HandleMessage processes msg and routes failures to retry or the DLQ.
// Exported so it can be reused by the reclaimer.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) {
	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"message_id", msg.ID,
			"task_type", msg.TaskType)
		w.handleFailedMessage(ctx, msg, err)
	}
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	traceID := ""
	if msg.TraceID != nil {
		traceID = *msg.TraceID
	}
	span := logger.StartSpanFromTraceID(ctx, traceID, "worker."+string(msg.TaskType))
	defer span.End()

	taskType := string(msg.TaskType)
	msgID := msg.ID
	ctx = logger.WithLogFields(span.Context(), logger.LogFields{
		MessageID:      &msgID,
		TaskType:       &taskType,
		EventLogID:     msg.EventLogID,
		OrganizationID: msg.OrganizationID,
	})

	slog.InfoContext(ctx, "processing message", "attempt", msg.Attempt)

	start := time.Now()
	if err := w.handler.Process(ctx, msg.Task); err != nil {
		span.Fail(err)
		return err
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The reclaimer will redeliver; handlers are idempotent.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	slog.InfoContext(ctx, "message processed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
