// Package voice places outbound AI calls through Vapi or Retell and
// normalises their webhooks into CallEvent.
package voice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"switchyard.app/platform/internal/model"
)

var (
	ErrUnknownProvider = errors.New("unknown voice provider")
	ErrUnauthorized    = errors.New("voice webhook authentication failed")
	ErrIgnoredEvent    = errors.New("voice event ignored")
)

type CallRequest struct {
	AssistantID string
	FromNumber  string
	ToNumber    string
	// CallToken is echoed back in webhook metadata.
	CallToken string
	Variables map[string]string
}

type EventKind string

const (
	EventStatus EventKind = "status"
	EventEnded  EventKind = "ended"
)

// CallEvent is a provider webhook reduced to what call processing needs.
type CallEvent struct {
	Provider model.VoiceProvider
	// Name is the provider's own event type, e.g. call_analyzed.
	Name            string
	Kind            EventKind
	ProviderCallID  string
	CallToken       string
	Status          model.CallStatus
	DurationSeconds int32
	Transcript      string
	RecordingURL    string
	Summary         string
	CostCents       int64
	Outcome         string
	StartedAt       *time.Time
	EndedAt         *time.Time
}

// ExternalID identifies the event for webhook dedupe. Distinct provider
// events that normalise to the same kind and status keep distinct ids.
func (e *CallEvent) ExternalID() string {
	name := e.Name
	if name == "" {
		name = string(e.Kind)
	}
	return fmt.Sprintf("%s:%s:%s", e.ProviderCallID, name, e.Status)
}

type Provider interface {
	Name() model.VoiceProvider
	PlaceCall(ctx context.Context, req CallRequest) (providerCallID string, err error)
	Authenticate(header http.Header, body []byte) error
	ParseEvent(body []byte) (*CallEvent, error)
}

type Registry struct {
	providers map[model.VoiceProvider]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[model.VoiceProvider]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name model.VoiceProvider) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

func unixMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
