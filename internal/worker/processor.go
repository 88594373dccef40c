package worker

import (
	"context"
	"fmt"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
)

// Processor routes a task to the service that owns it.
type Processor struct {
	webhooks    WebhookProcessor
	automations AutomationRunner
	calls       CallSummarizer
}

func NewProcessor(webhooks WebhookProcessor, automations AutomationRunner, calls CallSummarizer) *Processor {
	return &Processor{webhooks: webhooks, automations: automations, calls: calls}
}

func (p *Processor) Process(ctx context.Context, task queue.Task) error {
	switch task.TaskType {
	case queue.TaskTypeWebhookEvent:
		return p.webhooks.ProcessEvent(ctx, *task.EventLogID)
	case queue.TaskTypeAutomation:
		trigger := model.Trigger(task.Trigger)
		if !trigger.Valid() {
			return fmt.Errorf("unknown trigger %q", task.Trigger)
		}
		return p.automations.Run(ctx, *task.OrganizationID, trigger, *task.SubjectID)
	case queue.TaskTypeCallSummary:
		return p.calls.Summarize(ctx, *task.CallID)
	default:
		return fmt.Errorf("unknown task_type %q", task.TaskType)
	}
}
