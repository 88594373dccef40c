// Package nylas talks to the Nylas v3 API: hosted auth, messages and webhooks.
package nylas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/integration"
)

const (
	SignatureHeader = "X-Nylas-Signature"
	defaultAPIURL   = "https://api.us.nylas.com"
	service         = "nylas"
)

var ErrNotConfigured = errors.New("nylas is not configured")

type Grant struct {
	GrantID  string `json:"grant_id"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

type Participant struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Message struct {
	ID       string        `json:"id"`
	GrantID  string        `json:"grant_id"`
	ThreadID string        `json:"thread_id"`
	Subject  string        `json:"subject"`
	Snippet  string        `json:"snippet"`
	Body     string        `json:"body"`
	From     []Participant `json:"from"`
	To       []Participant `json:"to"`
	Date     int64         `json:"date"`
	Unread   bool          `json:"unread"`
	Starred  bool          `json:"starred"`
}

type SendRequest struct {
	To               []Participant `json:"to"`
	Subject          string        `json:"subject"`
	Body             string        `json:"body"`
	ReplyToMessageID string        `json:"reply_to_message_id,omitempty"`
}

type Client struct {
	http          *retryablehttp.Client
	apiURL        string
	apiKey        string
	clientID      string
	redirectURI   string
	webhookSecret string
}

func New(cfg config.NylasConfig) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		http:          integration.NewHTTPClient(3),
		apiURL:        apiURL,
		apiKey:        cfg.APIKey,
		clientID:      cfg.ClientID,
		redirectURI:   cfg.RedirectURI,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (c *Client) configured() bool {
	return c.apiKey != "" && c.clientID != ""
}

// AuthURL is the hosted-auth page the user is sent to when connecting a mailbox.
func (c *Client) AuthURL(state string) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("response_type", "code")
	q.Set("access_type", "online")
	q.Set("state", state)
	return c.apiURL + "/v3/connect/auth?" + q.Encode(), nil
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*Grant, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	var grant Grant
	err := integration.DoJSON(ctx, c.http, integration.Request{
		Service: service,
		Method:  http.MethodPost,
		URL:     c.apiURL + "/v3/connect/token",
		Body: map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.apiKey,
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  c.redirectURI,
		},
	}, &grant)
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}
	if grant.GrantID == "" {
		return nil, fmt.Errorf("exchanging code: empty grant id")
	}
	return &grant, nil
}

func (c *Client) GetMessage(ctx context.Context, grantID, messageID string) (*Message, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	var resp struct {
		Data Message `json:"data"`
	}
	err := integration.DoJSON(ctx, c.http, integration.Request{
		Service: service,
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s/v3/grants/%s/messages/%s", c.apiURL, url.PathEscape(grantID), url.PathEscape(messageID)),
		Headers: c.auth(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("getting message %s: %w", messageID, err)
	}
	return &resp.Data, nil
}

func (c *Client) Send(ctx context.Context, grantID string, req SendRequest) (*Message, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	var resp struct {
		Data Message `json:"data"`
	}
	err := integration.DoJSON(ctx, c.http, integration.Request{
		Service: service,
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("%s/v3/grants/%s/messages/send", c.apiURL, url.PathEscape(grantID)),
		Headers: c.auth(),
		Body:    req,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}
	return &resp.Data, nil
}

// VerifySignature checks X-Nylas-Signature, the hex HMAC-SHA256 of the body.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	return integration.VerifyHexHMAC(c.webhookSecret, body, signature)
}

func (c *Client) auth() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

// ReceivedAt converts the unix Date field.
func (m *Message) ReceivedAt() time.Time {
	if m.Date <= 0 {
		return time.Time{}
	}
	return time.Unix(m.Date, 0).UTC()
}
