package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/store"
)

var ErrEmptyPayload = errors.New("payload is required")

type WebhookIngestParams struct {
	Source         model.EventSource
	EventType      string
	ExternalID     string
	OrganizationID *int64
	Payload        json.RawMessage
}

type WebhookIngestResult struct {
	EventLog   *model.EventLog
	DedupeKey  string
	Enqueued   bool
	Duplicated bool
}

// WebhookIngestService stores verified inbound webhooks exactly once and
// hands new ones to the worker.
type WebhookIngestService interface {
	Ingest(ctx context.Context, params WebhookIngestParams) (*WebhookIngestResult, error)
}

type webhookIngestService struct {
	eventLogs store.EventLogStore
	queue     queue.Producer
}

func NewWebhookIngestService(eventLogs store.EventLogStore, producer queue.Producer) WebhookIngestService {
	return &webhookIngestService{eventLogs: eventLogs, queue: producer}
}

func (s *webhookIngestService) Ingest(ctx context.Context, params WebhookIngestParams) (*WebhookIngestResult, error) {
	if params.Source == "" || params.EventType == "" {
		return nil, fmt.Errorf("source and event_type are required")
	}
	if len(params.Payload) == 0 {
		return nil, ErrEmptyPayload
	}

	dedupeKey := DedupeKey(params.Source, params.EventType, params.ExternalID, params.Payload)

	event := &model.EventLog{
		ID:             id.New(),
		OrganizationID: params.OrganizationID,
		Source:         params.Source,
		EventType:      params.EventType,
		DedupeKey:      dedupeKey,
		Payload:        params.Payload,
	}
	if params.ExternalID != "" {
		event.ExternalID = &params.ExternalID
	}

	eventLog, created, err := s.eventLogs.CreateOrGet(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("creating event log: %w", err)
	}

	if !created {
		slog.InfoContext(ctx, "duplicate webhook deduped",
			"event_log_id", eventLog.ID,
			"source", params.Source,
			"dedupe_key", dedupeKey)
		return &WebhookIngestResult{EventLog: eventLog, DedupeKey: dedupeKey, Duplicated: true}, nil
	}

	if err := s.queue.Enqueue(ctx, queue.WebhookEventTask(eventLog.ID, eventLog.OrganizationID)); err != nil {
		return nil, fmt.Errorf("enqueueing webhook event: %w", err)
	}

	return &WebhookIngestResult{EventLog: eventLog, DedupeKey: dedupeKey, Enqueued: true}, nil
}

// DedupeKey is source:eventType:externalID, or source:sha256(payload) when the
// provider gives no stable id.
func DedupeKey(source model.EventSource, eventType, externalID string, payload []byte) string {
	if externalID != "" {
		return fmt.Sprintf("%s:%s:%s", source, eventType, externalID)
	}
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("%s:%s", source, hex.EncodeToString(hash[:]))
}
