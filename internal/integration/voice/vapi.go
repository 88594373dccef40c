package voice

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/integration"
	"switchyard.app/platform/internal/model"
)

const (
	VapiSecretHeader = "X-Vapi-Secret"
	defaultVapiURL   = "https://api.vapi.ai"
)

type Vapi struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	secret  string
}

func NewVapi(cfg config.VoiceProviderConfig) *Vapi {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultVapiURL
	}
	return &Vapi{http: integration.NewHTTPClient(2), baseURL: base, apiKey: cfg.APIKey, secret: cfg.WebhookSecret}
}

func (v *Vapi) Name() model.VoiceProvider { return model.VoiceProviderVapi }

func (v *Vapi) PlaceCall(ctx context.Context, req CallRequest) (string, error) {
	body := map[string]any{
		"assistantId":   req.AssistantID,
		"phoneNumberId": req.FromNumber,
		"customer":      map[string]string{"number": req.ToNumber},
		"metadata":      map[string]string{"call_token": req.CallToken},
	}
	if len(req.Variables) > 0 {
		body["assistantOverrides"] = map[string]any{"variableValues": req.Variables}
	}
	var resp struct {
		ID string `json:"id"`
	}
	err := integration.DoJSON(ctx, v.http, integration.Request{
		Service: "vapi",
		Method:  http.MethodPost,
		URL:     v.baseURL + "/call",
		Headers: map[string]string{"Authorization": "Bearer " + v.apiKey},
		Body:    body,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("placing vapi call: %w", err)
	}
	return resp.ID, nil
}

func (v *Vapi) Authenticate(header http.Header, _ []byte) error {
	got := header.Get(VapiSecretHeader)
	if v.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(v.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

func (v *Vapi) ParseEvent(body []byte) (*CallEvent, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("vapi event is not valid JSON")
	}
	msg := gjson.GetBytes(body, "message")
	ev := &CallEvent{
		Provider:       model.VoiceProviderVapi,
		ProviderCallID: msg.Get("call.id").String(),
		CallToken:      msg.Get("call.metadata.call_token").String(),
	}
	if ev.ProviderCallID == "" {
		return nil, fmt.Errorf("vapi event missing call id")
	}

	ev.Name = msg.Get("type").String()
	switch ev.Name {
	case "status-update":
		ev.Kind = EventStatus
		switch msg.Get("status").String() {
		case "queued", "scheduled":
			ev.Status = model.CallStatusQueued
		case "ringing", "in-progress", "forwarding":
			ev.Status = model.CallStatusInProgress
			ev.StartedAt = parseTime(msg.Get("call.startedAt").String())
		default:
			return nil, ErrIgnoredEvent
		}
	case "end-of-call-report":
		ev.Kind = EventEnded
		ev.Status = vapiEndedStatus(msg.Get("endedReason").String())
		ev.StartedAt = parseTime(firstNonEmpty(msg.Get("startedAt").String(), msg.Get("call.startedAt").String()))
		ev.EndedAt = parseTime(firstNonEmpty(msg.Get("endedAt").String(), msg.Get("call.endedAt").String()))
		ev.DurationSeconds = int32(math.Ceil(msg.Get("durationSeconds").Float()))
		if ev.DurationSeconds == 0 && ev.StartedAt != nil && ev.EndedAt != nil {
			ev.DurationSeconds = int32(math.Ceil(ev.EndedAt.Sub(*ev.StartedAt).Seconds()))
		}
		ev.Transcript = firstNonEmpty(msg.Get("artifact.transcript").String(), msg.Get("transcript").String())
		ev.RecordingURL = firstNonEmpty(msg.Get("artifact.recordingUrl").String(), msg.Get("recordingUrl").String())
		ev.Summary = msg.Get("analysis.summary").String()
		ev.CostCents = int64(math.Round(msg.Get("cost").Float() * 100))
		ev.Outcome = msg.Get("endedReason").String()
	default:
		return nil, ErrIgnoredEvent
	}
	return ev, nil
}

func vapiEndedStatus(reason string) model.CallStatus {
	switch {
	case reason == "customer-did-not-answer", strings.Contains(reason, "no-answer"):
		return model.CallStatusNoAnswer
	case reason == "customer-busy", strings.Contains(reason, "busy"):
		return model.CallStatusBusy
	case strings.Contains(reason, "voicemail"):
		return model.CallStatusVoicemail
	case strings.Contains(reason, "error"), strings.Contains(reason, "failed"):
		return model.CallStatusFailed
	}
	return model.CallStatusCompleted
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
