package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common/llm"
)

const (
	assistantAttempts = 3
	maxPromptChars    = 12000
)

var ErrAssistantDisabled = errors.New("assistant is not configured")

type DraftTone string

const (
	ToneFriendly DraftTone = "friendly"
	ToneFormal   DraftTone = "formal"
	ToneBrief    DraftTone = "brief"
)

type DraftInput struct {
	FromName  string
	FromEmail string
	Subject   string
	Body      string
	Tone      DraftTone
	SenderOrg string
}

type DraftReply struct {
	Subject string `json:"subject" jsonschema_description:"Reply subject line, usually Re: plus the original subject"`
	Body    string `json:"body" jsonschema_description:"Plain text reply body without signature"`
}

type CallSummary struct {
	Summary   string `json:"summary" jsonschema_description:"Two to four sentence summary of the call"`
	Outcome   string `json:"outcome" jsonschema:"enum=interested,enum=not_interested,enum=callback_requested,enum=meeting_booked,enum=wrong_number,enum=no_decision" jsonschema_description:"Best matching call outcome"`
	Sentiment string `json:"sentiment" jsonschema:"enum=positive,enum=neutral,enum=negative" jsonschema_description:"Overall sentiment of the contact"`
	FollowUp  string `json:"follow_up" jsonschema_description:"Next step for the sales team, empty when none"`
}

type CallScript struct {
	Opening        string   `json:"opening" jsonschema_description:"First lines the agent says after the contact answers"`
	Talking        []string `json:"talking_points" jsonschema_description:"Key points to cover in order"`
	Objections     []string `json:"objection_handling" jsonschema_description:"Short answers to likely objections"`
	Closing        string   `json:"closing" jsonschema_description:"How to close or book the next step"`
	TemplateSource string   `json:"template" jsonschema_description:"The full script as one template body using {{ contact.first_name }} style placeholders"`
}

var (
	draftReplySchema  = llm.GenerateSchema[DraftReply]()
	callSummarySchema = llm.GenerateSchema[CallSummary]()
	callScriptSchema  = llm.GenerateSchema[CallScript]()
)

type Assistant interface {
	DraftReply(ctx context.Context, in DraftInput) (*DraftReply, error)
	SummarizeCall(ctx context.Context, transcript string) (*CallSummary, error)
	GenerateCallScript(ctx context.Context, goal, product string) (*CallScript, error)
}

type assistant struct {
	llm llm.Client
}

// NewAssistant returns an assistant backed by client. A nil client yields an
// assistant whose calls fail with ErrAssistantDisabled.
func NewAssistant(client llm.Client) Assistant {
	return &assistant{llm: client}
}

func (a *assistant) DraftReply(ctx context.Context, in DraftInput) (*DraftReply, error) {
	tone := in.Tone
	if tone == "" {
		tone = ToneFriendly
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tone: %s\n", tone)
	if in.SenderOrg != "" {
		fmt.Fprintf(&b, "You write on behalf of: %s\n", in.SenderOrg)
	}
	fmt.Fprintf(&b, "From: %s <%s>\nSubject: %s\n\n%s", in.FromName, in.FromEmail, in.Subject, truncatePrompt(in.Body))

	var reply DraftReply
	if err := a.chat(ctx, "draft_reply", llm.Request{
		SystemPrompt: draftReplySystemPrompt,
		UserPrompt:   b.String(),
		SchemaName:   "draft_reply",
		Schema:       draftReplySchema,
		Temperature:  llm.Temp(0.6),
	}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (a *assistant) SummarizeCall(ctx context.Context, transcript string) (*CallSummary, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("empty transcript")
	}

	var summary CallSummary
	if err := a.chat(ctx, "call_summary", llm.Request{
		SystemPrompt: callSummarySystemPrompt,
		UserPrompt:   truncatePrompt(transcript),
		SchemaName:   "call_summary",
		Schema:       callSummarySchema,
		Temperature:  llm.Temp(0.1),
	}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (a *assistant) GenerateCallScript(ctx context.Context, goal, product string) (*CallScript, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, fmt.Errorf("campaign goal is required")
	}

	var script CallScript
	if err := a.chat(ctx, "call_script", llm.Request{
		SystemPrompt: callScriptSystemPrompt,
		UserPrompt:   fmt.Sprintf("Campaign goal: %s\nProduct: %s", goal, product),
		SchemaName:   "call_script",
		Schema:       callScriptSchema,
		Temperature:  llm.Temp(0.7),
	}, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

func (a *assistant) chat(ctx context.Context, task string, req llm.Request, result any) error {
	if a.llm == nil {
		return ErrAssistantDisabled
	}

	start := time.Now()
	resp, err := llm.ChatWithRetry(ctx, a.llm, req, result, assistantAttempts)
	if err != nil {
		return fmt.Errorf("%s: %w", task, err)
	}

	slog.InfoContext(ctx, "assistant completion",
		"task", task,
		"model", a.llm.Model(),
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens,
		"latency_ms", time.Since(start).Milliseconds())
	return nil
}

func truncatePrompt(s string) string {
	if len(s) <= maxPromptChars {
		return s
	}
	return s[:maxPromptChars]
}

const draftReplySystemPrompt = `You draft email replies for a sales and support team.
Answer the sender's actual questions, keep the requested tone, and never invent prices,
dates or commitments that are not in the original message. Do not add a signature.`

const callSummarySystemPrompt = `You summarise transcripts of outbound sales calls placed by an AI agent.
Report what the contact said, not what the agent said. Choose the outcome that best matches
the end of the call. Leave follow_up empty when nothing was agreed.`

const callScriptSystemPrompt = `You write scripts for an AI voice agent making outbound calls.
Keep sentences short and natural to say aloud. Ask for permission to continue early in the call.
Use {{ contact.first_name }}, {{ contact.company }} and {{ organization.name }} placeholders where personalisation helps.`
