package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with a context carrying them.
// The TraceHandler reads them back, so call sites only log what is specific to the call.
type LogFields struct {
	OrganizationID *int64
	UserID         *int64
	CampaignID     *int64
	EventLogID     *int64
	MessageID      *string // redis stream message id
	RequestID      *string
	TaskType       *string
	Component      string // e.g. "switchyard.worker.scheduler"
}

// WithLogFields merges fields into the context. Non-nil values in fields win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored on ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.CampaignID != nil {
		result.CampaignID = next.CampaignID
	}
	if next.EventLogID != nil {
		result.EventLogID = next.EventLogID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.TaskType != nil {
		result.TaskType = next.TaskType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr returns a pointer to v. Handy for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
