package voice

import (
	"context"
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
	RetellSignatureHeader = "X-Retell-Signature"
	defaultRetellURL      = "https://api.retellai.com"
)

type Retell struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	secret  string
}

func NewRetell(cfg config.VoiceProviderConfig) *Retell {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultRetellURL
	}
	secret := cfg.WebhookSecret
	if secret == "" {
		secret = cfg.APIKey
	}
	return &Retell{http: integration.NewHTTPClient(2), baseURL: base, apiKey: cfg.APIKey, secret: secret}
}

func (r *Retell) Name() model.VoiceProvider { return model.VoiceProviderRetell }

func (r *Retell) PlaceCall(ctx context.Context, req CallRequest) (string, error) {
	body := map[string]any{
		"from_number":       req.FromNumber,
		"to_number":         req.ToNumber,
		"override_agent_id": req.AssistantID,
		"metadata":          map[string]string{"call_token": req.CallToken},
	}
	if len(req.Variables) > 0 {
		body["retell_llm_dynamic_variables"] = req.Variables
	}
	var resp struct {
		CallID string `json:"call_id"`
	}
	err := integration.DoJSON(ctx, r.http, integration.Request{
		Service: "retell",
		Method:  http.MethodPost,
		URL:     r.baseURL + "/v2/create-phone-call",
		Headers: map[string]string{"Authorization": "Bearer " + r.apiKey},
		Body:    body,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("placing retell call: %w", err)
	}
	return resp.CallID, nil
}

// Authenticate checks the hex HMAC-SHA256 of the body in X-Retell-Signature.
func (r *Retell) Authenticate(header http.Header, body []byte) error {
	if !integration.VerifyHexHMAC(r.secret, body, header.Get(RetellSignatureHeader)) {
		return ErrUnauthorized
	}
	return nil
}

func (r *Retell) ParseEvent(body []byte) (*CallEvent, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("retell event is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	call := root.Get("call")
	ev := &CallEvent{
		Provider:       model.VoiceProviderRetell,
		ProviderCallID: call.Get("call_id").String(),
		CallToken:      call.Get("metadata.call_token").String(),
		StartedAt:      unixMillis(call.Get("start_timestamp").Int()),
	}
	if ev.ProviderCallID == "" {
		return nil, fmt.Errorf("retell event missing call id")
	}

	ev.Name = root.Get("event").String()
	switch ev.Name {
	case "call_started":
		ev.Kind = EventStatus
		ev.Status = model.CallStatusInProgress
	case "call_ended", "call_analyzed":
		ev.Kind = EventEnded
		ev.EndedAt = unixMillis(call.Get("end_timestamp").Int())
		ev.Status = retellEndedStatus(call.Get("call_status").String(), call.Get("disconnection_reason").String())
		ev.DurationSeconds = int32(math.Ceil(call.Get("duration_ms").Float() / 1000))
		ev.Transcript = call.Get("transcript").String()
		ev.RecordingURL = call.Get("recording_url").String()
		ev.Summary = call.Get("call_analysis.call_summary").String()
		ev.CostCents = int64(math.Round(call.Get("call_cost.combined_cost").Float()))
		ev.Outcome = call.Get("disconnection_reason").String()
	default:
		return nil, ErrIgnoredEvent
	}
	return ev, nil
}

func retellEndedStatus(status, reason string) model.CallStatus {
	switch reason {
	case "dial_no_answer":
		return model.CallStatusNoAnswer
	case "dial_busy":
		return model.CallStatusBusy
	case "voicemail_reached":
		return model.CallStatusVoicemail
	case "dial_failed":
		return model.CallStatusFailed
	}
	if status == "error" || strings.HasPrefix(reason, "error") {
		return model.CallStatusFailed
	}
	return model.CallStatusCompleted
}
