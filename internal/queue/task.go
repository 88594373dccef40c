package queue

type TaskType string

const (
	// TaskTypeWebhookEvent processes a stored inbound webhook (event_log_id).
	TaskTypeWebhookEvent TaskType = "webhook_event"
	// TaskTypeAutomation runs the automations for a trigger on one subject.
	TaskTypeAutomation TaskType = "automation"
	// TaskTypeCallSummary summarises a finished call transcript (call_id).
	TaskTypeCallSummary TaskType = "call_summary"
)

type Task struct {
	TaskType       TaskType
	EventLogID     *int64
	OrganizationID *int64
	Trigger        string
	SubjectID      *int64
	CallID         *int64
	TraceID        *string
	Attempt        int
}

func WebhookEventTask(eventLogID int64, orgID *int64) Task {
	return Task{TaskType: TaskTypeWebhookEvent, EventLogID: &eventLogID, OrganizationID: orgID}
}

func AutomationTask(orgID int64, trigger string, subjectID int64) Task {
	return Task{TaskType: TaskTypeAutomation, OrganizationID: &orgID, Trigger: trigger, SubjectID: &subjectID}
}

func CallSummaryTask(orgID, callID int64) Task {
	return Task{TaskType: TaskTypeCallSummary, OrganizationID: &orgID, CallID: &callID}
}
