package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/condition"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrAutomationNotFound = errors.New("automation not found")
	ErrInvalidAutomation  = errors.New("invalid automation")
)

type AutomationInput struct {
	Name       string
	Trigger    model.Trigger
	Conditions json.RawMessage
	Actions    []model.Action
	Enabled    *bool
}

type AutomationService interface {
	Create(ctx context.Context, orgID int64, in AutomationInput) (*model.Automation, error)
	Get(ctx context.Context, orgID, id int64) (*model.Automation, error)
	Update(ctx context.Context, orgID, id int64, in AutomationInput) (*model.Automation, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64) ([]model.Automation, error)
	// Test evaluates conditions against doc without side effects.
	Test(conditions json.RawMessage, doc json.RawMessage) (bool, error)
	// Run evaluates every enabled automation for trigger against the subject.
	Run(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64) error
}

type automationService struct {
	automations store.AutomationStore
	contacts    store.ContactStore
	deals       store.DealStore
	calls       store.CallRecordStore
	messages    store.EmailMessageStore
	campaigns   store.CampaignStore
	enrollments store.CampaignContactStore
	memberships store.MembershipStore
}

func NewAutomationService(
	automations store.AutomationStore,
	contacts store.ContactStore,
	deals store.DealStore,
	calls store.CallRecordStore,
	messages store.EmailMessageStore,
	campaigns store.CampaignStore,
	enrollments store.CampaignContactStore,
	memberships store.MembershipStore,
) AutomationService {
	return &automationService{
		automations: automations,
		contacts:    contacts,
		deals:       deals,
		calls:       calls,
		messages:    messages,
		campaigns:   campaigns,
		enrollments: enrollments,
		memberships: memberships,
	}
}

func (s *automationService) Create(ctx context.Context, orgID int64, in AutomationInput) (*model.Automation, error) {
	a := &model.Automation{
		ID:             id.New(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Trigger:        in.Trigger,
		Conditions:     in.Conditions,
		Actions:        in.Actions,
		Enabled:        in.Enabled == nil || *in.Enabled,
	}
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.automations.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating automation: %w", err)
	}
	slog.InfoContext(ctx, "automation created", "automation_id", a.ID, "trigger", a.Trigger)
	return a, nil
}

func (s *automationService) Get(ctx context.Context, orgID, id int64) (*model.Automation, error) {
	a, err := s.automations.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAutomationNotFound
		}
		return nil, fmt.Errorf("getting automation: %w", err)
	}
	return a, nil
}

func (s *automationService) Update(ctx context.Context, orgID, id int64, in AutomationInput) (*model.Automation, error) {
	a, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		a.Name = name
	}
	if in.Trigger != "" {
		a.Trigger = in.Trigger
	}
	if in.Conditions != nil {
		a.Conditions = in.Conditions
	}
	if in.Actions != nil {
		a.Actions = in.Actions
	}
	if in.Enabled != nil {
		a.Enabled = *in.Enabled
	}
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.automations.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("updating automation: %w", err)
	}
	return a, nil
}

func (s *automationService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.automations.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAutomationNotFound
		}
		return fmt.Errorf("deleting automation: %w", err)
	}
	return nil
}

func (s *automationService) List(ctx context.Context, orgID int64) ([]model.Automation, error) {
	automations, err := s.automations.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing automations: %w", err)
	}
	return automations, nil
}

func (s *automationService) Test(conditions json.RawMessage, doc json.RawMessage) (bool, error) {
	node, err := condition.Parse(conditions)
	if err != nil {
		return false, err
	}
	if err := condition.Validate(node); err != nil {
		return false, err
	}
	if len(doc) == 0 {
		doc = json.RawMessage("{}")
	}
	return condition.Evaluate(node, doc)
}

func (s *automationService) Run(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64) error {
	automations, err := s.automations.ListEnabledByTrigger(ctx, orgID, trigger)
	if err != nil {
		return fmt.Errorf("listing automations: %w", err)
	}
	if len(automations) == 0 {
		return nil
	}

	subject, err := s.loadSubject(ctx, orgID, trigger, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		slog.InfoContext(ctx, "automation subject no longer exists", "trigger", trigger, "subject_id", subjectID)
		return nil
	}

	for _, a := range automations {
		matched, err := condition.Match(a.Conditions, subject.doc)
		if err != nil {
			// A stored tree that no longer evaluates must not block the rest.
			slog.WarnContext(ctx, "automation condition failed", "error", err, "automation_id", a.ID)
			continue
		}
		if !matched {
			continue
		}

		if subject.contact != nil {
			contact, err := s.apply(ctx, orgID, subject.contact, a.Actions)
			subject.contact = contact
			if err != nil {
				// Earlier automations already applied; a retry would repeat them.
				slog.WarnContext(ctx, "automation action failed",
					"error", err,
					"automation_id", a.ID,
					"subject_id", subjectID)
				continue
			}
		}
		if err := s.automations.RecordRun(ctx, a.ID); err != nil {
			slog.WarnContext(ctx, "failed to record automation run", "error", err, "automation_id", a.ID)
		}
		slog.InfoContext(ctx, "automation ran",
			"automation_id", a.ID,
			"trigger", trigger,
			"subject_id", subjectID,
			"actions", len(a.Actions))
	}
	return nil
}

type automationSubject struct {
	doc     []byte
	contact *model.Contact
}

// loadSubject builds the document conditions see: the linked contact's fields
// at the top level and the trigger's own record under its kind. A nil subject
// means the record is gone.
func (s *automationService) loadSubject(ctx context.Context, orgID int64, trigger model.Trigger, subjectID int64) (*automationSubject, error) {
	var (
		key       string
		record    any
		contactID *int64
	)

	switch trigger {
	case model.TriggerContactCreated, model.TriggerContactUpdated:
		contactID = &subjectID
	case model.TriggerDealStageChanged:
		d, err := s.deals.GetByID(ctx, orgID, subjectID)
		if err != nil {
			return notFoundSubject(err)
		}
		key, record, contactID = "deal", d, d.ContactID
	case model.TriggerCallCompleted:
		c, err := s.calls.GetForOrganization(ctx, orgID, subjectID)
		if err != nil {
			return notFoundSubject(err)
		}
		key, record, contactID = "call", c, &c.ContactID
	case model.TriggerEmailReceived:
		m, err := s.messages.GetByID(ctx, orgID, subjectID)
		if err != nil {
			return notFoundSubject(err)
		}
		key, record, contactID = "email", m, m.ContactID
	default:
		return nil, fmt.Errorf("unknown trigger %q", trigger)
	}

	subject := &automationSubject{}
	doc := map[string]any{}
	if contactID != nil {
		c, err := s.contacts.GetByID(ctx, orgID, *contactID)
		switch {
		case err == nil:
			subject.contact = c
			if err := json.Unmarshal(c.Document(), &doc); err != nil {
				return nil, fmt.Errorf("decoding contact document: %w", err)
			}
		case errors.Is(err, store.ErrNotFound):
			if key == "" {
				return nil, nil
			}
		default:
			return nil, fmt.Errorf("getting contact: %w", err)
		}
	}
	if key != "" {
		doc[key] = record
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding subject document: %w", err)
	}
	subject.doc = raw
	return subject, nil
}

func notFoundSubject(err error) (*automationSubject, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("loading automation subject: %w", err)
}

// apply runs actions directly against the stores so that automation side
// effects do not emit further triggers. It returns the contact as last
// written, even when an action fails.
func (s *automationService) apply(ctx context.Context, orgID int64, contact *model.Contact, actions []model.Action) (*model.Contact, error) {
	for _, action := range actions {
		var (
			updated *model.Contact
			err     error
		)
		switch action.Type {
		case model.ActionAddTag:
			tag := strings.ToLower(strings.TrimSpace(action.Value))
			if !contact.HasTag(tag) {
				updated, err = s.contacts.SetTags(ctx, orgID, contact.ID, append(slices.Clone(contact.Tags), tag))
			}
		case model.ActionRemoveTag:
			if contact.HasTag(action.Value) {
				tags := slices.DeleteFunc(slices.Clone(contact.Tags), func(t string) bool {
					return strings.EqualFold(t, action.Value)
				})
				updated, err = s.contacts.SetTags(ctx, orgID, contact.ID, tags)
			}
		case model.ActionSetContactStatus:
			updated, err = s.contacts.SetStatus(ctx, orgID, contact.ID, model.ContactStatus(action.Value))
		case model.ActionAssignOwner:
			var ownerID int64
			ownerID, err = strconv.ParseInt(action.Value, 10, 64)
			if err == nil {
				updated, err = s.contacts.SetOwner(ctx, orgID, contact.ID, &ownerID)
			}
		case model.ActionEnrollInCampaign:
			err = s.enroll(ctx, orgID, contact, action.Value)
		default:
			err = fmt.Errorf("unknown action %q", action.Type)
		}
		if err != nil {
			return contact, fmt.Errorf("%s: %w", action.Type, err)
		}
		if updated != nil {
			contact = updated
		}
	}
	return contact, nil
}

func (s *automationService) enroll(ctx context.Context, orgID int64, contact *model.Contact, value string) error {
	if contact.DoNotCall || !contact.HasPhone() {
		return nil
	}
	campaignID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	campaign, err := s.campaigns.GetByID(ctx, orgID, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "automation targets a missing campaign", "campaign_id", campaignID)
			return nil
		}
		return err
	}
	if campaign.Status == model.CampaignStatusCompleted {
		return nil
	}
	_, err = s.enrollments.Enroll(ctx, &model.CampaignContact{
		ID:             id.New(),
		CampaignID:     campaign.ID,
		OrganizationID: orgID,
		ContactID:      contact.ID,
		Status:         model.CampaignContactStatusPending,
	})
	return err
}

func (s *automationService) validate(ctx context.Context, a *model.Automation) error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAutomation)
	}
	if !a.Trigger.Valid() {
		return fmt.Errorf("%w: unknown trigger %q", ErrInvalidAutomation, a.Trigger)
	}
	if len(a.Actions) == 0 {
		return fmt.Errorf("%w: at least one action is required", ErrInvalidAutomation)
	}

	node, err := condition.Parse(a.Conditions)
	if err != nil {
		return err
	}
	if err := condition.Validate(node); err != nil {
		return err
	}
	if len(a.Conditions) == 0 {
		a.Conditions = json.RawMessage("null")
	}

	for i := range a.Actions {
		a.Actions[i].Value = strings.TrimSpace(a.Actions[i].Value)
		if err := s.validateAction(ctx, a.OrganizationID, a.Actions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *automationService) validateAction(ctx context.Context, orgID int64, action model.Action) error {
	if !action.Type.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAutomation, action.Type)
	}
	value := strings.TrimSpace(action.Value)
	if value == "" {
		return fmt.Errorf("%w: %s needs a value", ErrInvalidAutomation, action.Type)
	}

	switch action.Type {
	case model.ActionSetContactStatus:
		if !model.ContactStatus(value).Valid() {
			return fmt.Errorf("%w: invalid contact status %q", ErrInvalidAutomation, value)
		}
	case model.ActionAssignOwner:
		userID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: owner must be a user id", ErrInvalidAutomation)
		}
		if _, err := s.memberships.Get(ctx, orgID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: owner is not a member", ErrInvalidAutomation)
			}
			return fmt.Errorf("checking owner: %w", err)
		}
	case model.ActionEnrollInCampaign:
		campaignID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: campaign must be a campaign id", ErrInvalidAutomation)
		}
		if _, err := s.campaigns.GetByID(ctx, orgID, campaignID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: campaign not found", ErrInvalidAutomation)
			}
			return fmt.Errorf("checking campaign: %w", err)
		}
	}
	return nil
}
