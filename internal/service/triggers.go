package service

import (
	"context"
	"log/slog"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
)

// TriggerEmitter schedules automation runs. Emitting never fails the caller's
// operation; enqueue errors are logged.
type TriggerEmitter interface {
	Emit(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64)
}

type queueTriggers struct {
	producer queue.Producer
}

func NewTriggerEmitter(producer queue.Producer) TriggerEmitter {
	return &queueTriggers{producer: producer}
}

func (t *queueTriggers) Emit(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64) {
	if t.producer == nil {
		return
	}
	if err := t.producer.Enqueue(ctx, queue.AutomationTask(orgID, string(trigger), subjectID)); err != nil {
		slog.WarnContext(ctx, "failed to enqueue automation trigger",
			"error", err,
			"organization_id", orgID,
			"trigger", trigger,
			"subject_id", subjectID)
	}
}
