package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/condition"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

const (
	defaultMaxAttempts   = 3
	defaultRetryInterval = 60
	defaultMaxConcurrent = 1
	enrollScanBatch      = 500
)

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidCampaign     = errors.New("invalid campaign")
	ErrCampaignNotEditable = errors.New("only draft campaigns can be edited")
	ErrCampaignTransition  = errors.New("campaign status transition not allowed")
	ErrEnrollTarget        = errors.New("enroll needs contact ids or conditions")
)

type CampaignInput struct {
	Name                 string
	Provider             model.VoiceProvider
	AssistantID          string
	FromNumber           string
	ScriptTemplateID     *int64
	WindowStartMinute    int32
	WindowEndMinute      int32
	CallDays             []int32
	MaxAttempts          int32
	RetryIntervalMinutes int32
	MaxConcurrent        int32
	StartAt              *time.Time
}

// EnrollRequest selects contacts either explicitly or by condition tree.
type EnrollRequest struct {
	ContactIDs []int64
	Conditions json.RawMessage
}

type EnrollResult struct {
	Enrolled   int `json:"enrolled"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

type CampaignService interface {
	Create(ctx context.Context, orgID int64, in CampaignInput) (*model.Campaign, error)
	Get(ctx context.Context, orgID, id int64) (*model.Campaign, error)
	Update(ctx context.Context, orgID, id int64, in CampaignInput) (*model.Campaign, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status *model.CampaignStatus, limit, offset int) ([]model.Campaign, error)
	Enroll(ctx context.Context, orgID, id int64, req EnrollRequest) (*EnrollResult, error)
	Start(ctx context.Context, orgID, id int64) (*model.Campaign, error)
	Pause(ctx context.Context, orgID, id int64) (*model.Campaign, error)
	Resume(ctx context.Context, orgID, id int64) (*model.Campaign, error)
	Stats(ctx context.Context, orgID, id int64) (*model.CampaignStats, error)
	ListEnrollments(ctx context.Context, orgID, id int64, limit, offset int) ([]model.CampaignContact, error)
	ListCalls(ctx context.Context, orgID, id int64, limit, offset int) ([]model.CallRecord, error)
}

type campaignService struct {
	campaigns   store.CampaignStore
	enrollments store.CampaignContactStore
	contacts    store.ContactStore
	calls       store.CallRecordStore
	templates   store.TemplateStore
	now         func() time.Time
}

func NewCampaignService(
	campaigns store.CampaignStore,
	enrollments store.CampaignContactStore,
	contacts store.ContactStore,
	calls store.CallRecordStore,
	templates store.TemplateStore,
) CampaignService {
	return &campaignService{
		campaigns:   campaigns,
		enrollments: enrollments,
		contacts:    contacts,
		calls:       calls,
		templates:   templates,
		now:         time.Now,
	}
}

func (s *campaignService) Create(ctx context.Context, orgID int64, in CampaignInput) (*model.Campaign, error) {
	c := &model.Campaign{
		ID:             id.New(),
		OrganizationID: orgID,
		Status:         model.CampaignStatusDraft,
	}
	applyCampaignInput(c, in)
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}
	slog.InfoContext(ctx, "campaign created", "campaign_id", c.ID, "provider", c.Provider)
	return c, nil
}

func (s *campaignService) Get(ctx context.Context, orgID, id int64) (*model.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("getting campaign: %w", err)
	}
	return c, nil
}

func (s *campaignService) Update(ctx context.Context, orgID, id int64, in CampaignInput) (*model.Campaign, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != model.CampaignStatusDraft {
		return nil, ErrCampaignNotEditable
	}
	applyCampaignInput(c, in)
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating campaign: %w", err)
	}
	return c, nil
}

func (s *campaignService) Delete(ctx context.Context, orgID, id int64) error {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return err
	}
	if c.Status == model.CampaignStatusRunning {
		return fmt.Errorf("%w: pause the campaign before deleting it", ErrCampaignTransition)
	}
	if err := s.campaigns.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	return nil
}

func (s *campaignService) List(ctx context.Context, orgID int64, status *model.CampaignStatus, limit, offset int) ([]model.Campaign, error) {
	l, o := pageBounds(limit, offset)
	campaigns, err := s.campaigns.List(ctx, orgID, status, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}

// Enroll adds contacts to a campaign. Do-not-call and phoneless contacts are
// skipped and already-enrolled contacts are counted as duplicates.
func (s *campaignService) Enroll(ctx context.Context, orgID, campaignID int64, req EnrollRequest) (*EnrollResult, error) {
	c, err := s.Get(ctx, orgID, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status == model.CampaignStatusCompleted {
		return nil, fmt.Errorf("%w: campaign is completed", ErrCampaignTransition)
	}

	var candidates []model.Contact
	switch {
	case len(req.ContactIDs) > 0:
		candidates, err = s.contacts.ListByIDs(ctx, orgID, req.ContactIDs)
		if err != nil {
			return nil, fmt.Errorf("loading contacts: %w", err)
		}
	case len(req.Conditions) > 0:
		candidates, err = s.matchContacts(ctx, orgID, req.Conditions)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrEnrollTarget
	}

	result := &EnrollResult{}
	for i := range candidates {
		contact := &candidates[i]
		if contact.DoNotCall || !contact.HasPhone() {
			result.Skipped++
			continue
		}
		created, err := s.enrollments.Enroll(ctx, &model.CampaignContact{
			ID:             id.New(),
			CampaignID:     c.ID,
			OrganizationID: orgID,
			ContactID:      contact.ID,
			Status:         model.CampaignContactStatusPending,
		})
		if err != nil {
			return nil, fmt.Errorf("enrolling contact %d: %w", contact.ID, err)
		}
		if created {
			result.Enrolled++
		} else {
			result.Duplicates++
		}
	}

	slog.InfoContext(ctx, "contacts enrolled",
		"campaign_id", c.ID,
		"enrolled", result.Enrolled,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped)
	return result, nil
}

func (s *campaignService) matchContacts(ctx context.Context, orgID int64, raw json.RawMessage) ([]model.Contact, error) {
	node, err := condition.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := condition.Validate(node); err != nil {
		return nil, err
	}

	var matched []model.Contact
	var afterID int64
	for {
		batch, err := s.contacts.ListAfter(ctx, orgID, afterID, enrollScanBatch)
		if err != nil {
			return nil, fmt.Errorf("scanning contacts: %w", err)
		}
		for i := range batch {
			ok, err := condition.Evaluate(node, batch[i].Document())
			if err != nil {
				return nil, err
			}
			if ok {
				matched = append(matched, batch[i])
			}
		}
		if len(batch) < enrollScanBatch {
			return matched, nil
		}
		afterID = batch[len(batch)-1].ID
	}
}

// Start runs a campaign now, or schedules it when StartAt is in the future.
func (s *campaignService) Start(ctx context.Context, orgID, id int64) (*model.Campaign, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.CanStart() {
		return nil, fmt.Errorf("%w: cannot start a %s campaign", ErrCampaignTransition, c.Status)
	}

	next := model.CampaignStatusRunning
	if c.StartAt != nil && c.StartAt.After(s.now()) {
		next = model.CampaignStatusScheduled
	}
	return s.setStatus(ctx, c, next)
}

func (s *campaignService) Pause(ctx context.Context, orgID, id int64) (*model.Campaign, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != model.CampaignStatusRunning && c.Status != model.CampaignStatusScheduled {
		return nil, fmt.Errorf("%w: cannot pause a %s campaign", ErrCampaignTransition, c.Status)
	}
	return s.setStatus(ctx, c, model.CampaignStatusPaused)
}

func (s *campaignService) Resume(ctx context.Context, orgID, id int64) (*model.Campaign, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != model.CampaignStatusPaused {
		return nil, fmt.Errorf("%w: cannot resume a %s campaign", ErrCampaignTransition, c.Status)
	}
	return s.Start(ctx, orgID, id)
}

func (s *campaignService) setStatus(ctx context.Context, c *model.Campaign, status model.CampaignStatus) (*model.Campaign, error) {
	updated, err := s.campaigns.SetStatus(ctx, c.ID, status)
	if err != nil {
		return nil, fmt.Errorf("updating campaign status: %w", err)
	}
	slog.InfoContext(ctx, "campaign status changed",
		"campaign_id", c.ID,
		"from", c.Status,
		"to", status)
	return updated, nil
}

func (s *campaignService) Stats(ctx context.Context, orgID, id int64) (*model.CampaignStats, error) {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	stats, err := s.enrollments.Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading enrollment stats: %w", err)
	}
	calls, seconds, err := s.calls.CampaignTotals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading call totals: %w", err)
	}
	stats.Calls = calls
	stats.DurationSeconds = seconds
	return &stats, nil
}

func (s *campaignService) ListEnrollments(ctx context.Context, orgID, id int64, limit, offset int) ([]model.CampaignContact, error) {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	l, o := pageBounds(limit, offset)
	items, err := s.enrollments.List(ctx, id, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	return items, nil
}

func (s *campaignService) ListCalls(ctx context.Context, orgID, id int64, limit, offset int) ([]model.CallRecord, error) {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	l, o := pageBounds(limit, offset)
	calls, err := s.calls.ListByCampaign(ctx, orgID, id, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing campaign calls: %w", err)
	}
	return calls, nil
}

func (s *campaignService) validate(ctx context.Context, c *model.Campaign) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidCampaign)
	case !c.Provider.Valid():
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidCampaign, c.Provider)
	case c.AssistantID == "" || c.FromNumber == "":
		return fmt.Errorf("%w: assistant id and from number are required", ErrInvalidCampaign)
	case c.WindowStartMinute < 0 || c.WindowStartMinute >= 24*60 || c.WindowEndMinute < 0 || c.WindowEndMinute > 24*60:
		return fmt.Errorf("%w: call window minutes must be within a day", ErrInvalidCampaign)
	case c.MaxAttempts < 1 || c.RetryIntervalMinutes < 1 || c.MaxConcurrent < 1:
		return fmt.Errorf("%w: attempts, retry interval and concurrency must be positive", ErrInvalidCampaign)
	}
	for _, d := range c.CallDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: call days are 0 (Sunday) to 6", ErrInvalidCampaign)
		}
	}
	if c.ScriptTemplateID != nil {
		t, err := s.templates.GetByID(ctx, c.OrganizationID, *c.ScriptTemplateID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("checking script template: %w", err)
		}
		if t.Kind != model.TemplateKindCallScript {
			return fmt.Errorf("%w: script template must be a call script", ErrInvalidCampaign)
		}
	}
	return nil
}

func applyCampaignInput(c *model.Campaign, in CampaignInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Provider = in.Provider
	c.AssistantID = strings.TrimSpace(in.AssistantID)
	c.FromNumber = strings.TrimSpace(in.FromNumber)
	c.ScriptTemplateID = in.ScriptTemplateID
	c.WindowStartMinute = in.WindowStartMinute
	c.WindowEndMinute = in.WindowEndMinute
	c.CallDays = in.CallDays
	c.MaxAttempts = in.MaxAttempts
	c.RetryIntervalMinutes = in.RetryIntervalMinutes
	c.MaxConcurrent = in.MaxConcurrent
	c.StartAt = in.StartAt

	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryIntervalMinutes == 0 {
		c.RetryIntervalMinutes = defaultRetryInterval
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
	if c.CallDays == nil {
		c.CallDays = []int32{}
	}
}
