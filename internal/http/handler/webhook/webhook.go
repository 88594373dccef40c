package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

// maxBodyBytes caps provider payloads.
const maxBodyBytes = 1 << 20

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return nil, false
	}
	return body, true
}

// ingest stores a verified event and answers the provider. Duplicates are
// acknowledged with 200 so providers stop retrying.
func ingest(c *gin.Context, ingester service.WebhookIngestService, source model.EventSource, eventType, externalID string, body []byte) {
	ctx := c.Request.Context()

	result, err := ingester.Ingest(ctx, service.WebhookIngestParams{
		Source:     source,
		EventType:  eventType,
		ExternalID: externalID,
		Payload:    body,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logFailure(ctx, source, eventType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	slog.InfoContext(ctx, "webhook ingested",
		"source", source,
		"event_type", eventType,
		"event_log_id", result.EventLog.ID,
		"dedupe_key", result.DedupeKey,
		"enqueued", result.Enqueued,
		"duplicated", result.Duplicated,
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "duplicate": result.Duplicated})
}

func logFailure(ctx context.Context, source model.EventSource, eventType string, err error) {
	slog.ErrorContext(ctx, "failed to ingest webhook",
		"error", err,
		"source", source,
		"event_type", eventType,
	)
}
