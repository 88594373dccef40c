package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"switchyard.app/platform/common/logger"
)

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task Task) error {
	if err := validate(task); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.TaskType, err)
	}

	attempt := task.Attempt
	if attempt <= 0 {
		attempt = 1
	}
	if task.TraceID == nil {
		if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
			task.TraceID = &traceID
		}
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: taskValues(task, attempt),
	}).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.TaskType, err)
	}

	p.logger.InfoContext(ctx, "enqueued task", "task_type", task.TaskType, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
