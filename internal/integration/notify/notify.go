// Package notify sends transactional email.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/integration"
)

const resendURL = "https://api.resend.com/emails"

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Resend sender when an API key is configured, otherwise a sender that only logs.
func New(cfg config.ResendConfig) Sender {
	if !cfg.Enabled() {
		return LogSender{}
	}
	return NewResend(cfg.APIKey, cfg.From, resendURL)
}

type Resend struct {
	http   *retryablehttp.Client
	apiKey string
	from   string
	url    string
}

func NewResend(apiKey, from, url string) *Resend {
	return &Resend{http: integration.NewHTTPClient(3), apiKey: apiKey, from: from, url: url}
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	body := map[string]any{
		"from":    r.from,
		"to":      []string{msg.To},
		"subject": msg.Subject,
	}
	if msg.HTML != "" {
		body["html"] = msg.HTML
	}
	if msg.Text != "" {
		body["text"] = msg.Text
	}
	var resp struct {
		ID string `json:"id"`
	}
	err := integration.DoJSON(ctx, r.http, integration.Request{
		Service: "resend",
		Method:  http.MethodPost,
		URL:     r.url,
		Headers: map[string]string{"Authorization": "Bearer " + r.apiKey},
		Body:    body,
	}, &resp)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	slog.InfoContext(ctx, "email sent", "provider_id", resp.ID, "subject", msg.Subject)
	return nil
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email not sent, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text)
	return nil
}
