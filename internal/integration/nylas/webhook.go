package nylas

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	EventMessageCreated = "message.created"
	EventMessageUpdated = "message.updated"
	EventGrantExpired   = "grant.expired"
)

// WebhookEvent is a decoded Nylas notification. Message is set for message.* events.
type WebhookEvent struct {
	ID              string
	Type            string
	GrantID         string
	Message         *Message
	ListUnsubscribe string
}

// ParseEnvelope reads only the notification id, type and grant. Webhook
// handlers use it to store a notification before its object is decoded.
func ParseEnvelope(payload []byte) (*WebhookEvent, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("nylas webhook is not valid JSON")
	}
	root := gjson.ParseBytes(payload)
	ev := &WebhookEvent{
		ID:      root.Get("id").String(),
		Type:    root.Get("type").String(),
		GrantID: root.Get("data.object.grant_id").String(),
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("nylas webhook missing type")
	}
	if ev.ID == "" {
		ev.ID = fmt.Sprintf("%s:%s:%d", ev.Type, root.Get("data.object.id").String(), root.Get("time").Int())
	}
	return ev, nil
}

// ParseWebhook decodes the full notification. Message events must carry a message id.
func ParseWebhook(payload []byte) (*WebhookEvent, error) {
	ev, err := ParseEnvelope(payload)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(ev.Type, "message.") {
		return ev, nil
	}

	obj := gjson.GetBytes(payload, "data.object")
	m := &Message{
		ID:       obj.Get("id").String(),
		GrantID:  ev.GrantID,
		ThreadID: obj.Get("thread_id").String(),
		Subject:  obj.Get("subject").String(),
		Snippet:  obj.Get("snippet").String(),
		Body:     obj.Get("body").String(),
		From:     participants(obj.Get("from")),
		To:       participants(obj.Get("to")),
		Date:     obj.Get("date").Int(),
		Unread:   obj.Get("unread").Bool(),
		Starred:  obj.Get("starred").Bool(),
	}
	if m.ID == "" {
		return nil, fmt.Errorf("nylas %s missing message id", ev.Type)
	}
	ev.Message = m
	obj.Get("headers").ForEach(func(_, h gjson.Result) bool {
		if strings.EqualFold(h.Get("name").String(), "List-Unsubscribe") {
			ev.ListUnsubscribe = h.Get("value").String()
			return false
		}
		return true
	})
	return ev, nil
}

func participants(r gjson.Result) []Participant {
	out := []Participant{}
	r.ForEach(func(_, p gjson.Result) bool {
		out = append(out, Participant{
			Name:  p.Get("name").String(),
			Email: strings.ToLower(strings.TrimSpace(p.Get("email").String())),
		})
		return true
	})
	return out
}

// Sender returns the first From participant.
func (m *Message) Sender() Participant {
	if len(m.From) == 0 {
		return Participant{}
	}
	return m.From[0]
}

func (m *Message) Recipients() []string {
	out := make([]string, 0, len(m.To))
	for _, p := range m.To {
		out = append(out, p.Email)
	}
	return out
}

// Timestamp falls back to now when the event carries no date.
func (m *Message) Timestamp(now time.Time) time.Time {
	if t := m.ReceivedAt(); !t.IsZero() {
		return t
	}
	return now
}
