package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/importer"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/search"
	"switchyard.app/platform/internal/store"
)

var (
	ErrContactNotFound     = errors.New("contact not found")
	ErrContactIdentity     = errors.New("contact needs an email or phone number")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTimezone     = errors.New("invalid timezone")
	ErrContactLimitReached = errors.New("plan contact limit reached")
)

type ContactInput struct {
	OwnerUserID  *int64
	FirstName    string
	LastName     string
	Email        *string
	Phone        *string
	Company      *string
	Title        *string
	State        *string
	Timezone     *string
	Status       model.ContactStatus
	Tags         []string
	CustomFields map[string]string
	DoNotCall    bool
	Source       string
}

// ContactPatch updates only the non-nil fields.
type ContactPatch struct {
	OwnerUserID  *int64
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Company      *string
	Title        *string
	State        *string
	Timezone     *string
	Status       *model.ContactStatus
	CustomFields map[string]string
	DoNotCall    *bool
}

type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

// PlanLimits reports per-organization quotas; zero means unlimited.
type PlanLimits interface {
	MaxContacts(ctx context.Context, orgID int64) (int64, error)
}

type ContactService interface {
	Create(ctx context.Context, orgID int64, in ContactInput) (*model.Contact, error)
	Get(ctx context.Context, orgID, id int64) (*model.Contact, error)
	Update(ctx context.Context, orgID, id int64, patch ContactPatch) (*model.Contact, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, filter model.ContactFilter) (search.Page[model.Contact], error)
	AddTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error)
	RemoveTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error)
	Search(ctx context.Context, orgID int64, query string, limit, offset int) (search.Page[model.Contact], error)
	PreviewImport(ctx context.Context, filename string, r io.Reader, overrides map[string]importer.Field) (*importer.Preview, error)
	CommitImport(ctx context.Context, orgID int64, filename string, r io.Reader, overrides map[string]importer.Field, ownerUserID *int64) (*ImportResult, error)
	Reindex(ctx context.Context, orgID int64) (int, error)
}

type contactService struct {
	contacts store.ContactStore
	txRunner TxRunner
	index    search.ContactIndex
	triggers TriggerEmitter
	limits   PlanLimits
}

// NewContactService builds the service. index and limits may be nil.
func NewContactService(contacts store.ContactStore, txRunner TxRunner, index search.ContactIndex, triggers TriggerEmitter, limits PlanLimits) ContactService {
	return &contactService{
		contacts: contacts,
		txRunner: txRunner,
		index:    index,
		triggers: triggers,
		limits:   limits,
	}
}

func (s *contactService) Create(ctx context.Context, orgID int64, in ContactInput) (*model.Contact, error) {
	c := &model.Contact{
		ID:             id.New(),
		OrganizationID: orgID,
		OwnerUserID:    in.OwnerUserID,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          in.Email,
		Phone:          in.Phone,
		Company:        trimPtr(in.Company),
		Title:          trimPtr(in.Title),
		State:          trimPtr(in.State),
		Timezone:       trimPtr(in.Timezone),
		Status:         in.Status,
		Tags:           normalizeTags(in.Tags),
		CustomFields:   in.CustomFields,
		DoNotCall:      in.DoNotCall,
		Source:         in.Source,
	}
	if c.Status == "" {
		c.Status = model.ContactStatusLead
	}
	if c.Source == "" {
		c.Source = "manual"
	}
	if c.CustomFields == nil {
		c.CustomFields = map[string]string{}
	}
	if err := normalizeContact(c); err != nil {
		return nil, err
	}
	if err := s.checkLimit(ctx, orgID, 1); err != nil {
		return nil, err
	}

	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	slog.InfoContext(ctx, "contact created", "contact_id", c.ID, "organization_id", orgID)
	s.afterWrite(ctx, c, model.TriggerContactCreated)
	return c, nil
}

func (s *contactService) Get(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	c, err := s.contacts.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, orgID, id int64, patch ContactPatch) (*model.Contact, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.OwnerUserID != nil {
		c.OwnerUserID = patch.OwnerUserID
	}
	if patch.FirstName != nil {
		c.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		c.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		c.Email = patch.Email
	}
	if patch.Phone != nil {
		c.Phone = patch.Phone
	}
	if patch.Company != nil {
		c.Company = trimPtr(patch.Company)
	}
	if patch.Title != nil {
		c.Title = trimPtr(patch.Title)
	}
	if patch.State != nil {
		c.State = trimPtr(patch.State)
	}
	if patch.Timezone != nil {
		c.Timezone = trimPtr(patch.Timezone)
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.CustomFields != nil {
		c.CustomFields = patch.CustomFields
	}
	if patch.DoNotCall != nil {
		c.DoNotCall = *patch.DoNotCall
	}
	if err := normalizeContact(c); err != nil {
		return nil, err
	}

	if err := s.contacts.Update(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	s.afterWrite(ctx, c, model.TriggerContactUpdated)
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.contacts.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("deleting contact: %w", err)
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, orgID, id); err != nil {
			slog.WarnContext(ctx, "failed to remove contact from index", "error", err, "contact_id", id)
		}
	}
	return nil
}

func (s *contactService) List(ctx context.Context, orgID int64, filter model.ContactFilter) (search.Page[model.Contact], error) {
	filter.Limit = int32(search.ClampLimit(int(filter.Limit)))
	filter.Offset = max(filter.Offset, 0)

	items, err := s.contacts.List(ctx, orgID, filter)
	if err != nil {
		return search.Page[model.Contact]{}, fmt.Errorf("listing contacts: %w", err)
	}
	total, err := s.contacts.Count(ctx, orgID, filter)
	if err != nil {
		return search.Page[model.Contact]{}, fmt.Errorf("counting contacts: %w", err)
	}

	return search.Page[model.Contact]{
		Items:   items,
		Total:   int(total),
		Limit:   int(filter.Limit),
		Offset:  int(filter.Offset),
		HasMore: int(filter.Offset)+len(items) < int(total),
	}, nil
}

func (s *contactService) AddTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error) {
	return s.editTags(ctx, orgID, id, func(current []string) []string {
		return normalizeTags(append(current, tags...))
	})
}

func (s *contactService) RemoveTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error) {
	drop := normalizeTags(tags)
	return s.editTags(ctx, orgID, id, func(current []string) []string {
		return slices.DeleteFunc(slices.Clone(current), func(t string) bool {
			return slices.Contains(drop, strings.ToLower(t))
		})
	})
}

func (s *contactService) editTags(ctx context.Context, orgID, id int64, edit func([]string) []string) (*model.Contact, error) {
	c, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.contacts.SetTags(ctx, orgID, id, edit(c.Tags))
	if err != nil {
		return nil, fmt.Errorf("updating tags: %w", err)
	}
	s.afterWrite(ctx, updated, model.TriggerContactUpdated)
	return updated, nil
}

// Search uses the search index when one is configured and falls back to a
// database substring match ranked in memory.
func (s *contactService) Search(ctx context.Context, orgID int64, query string, limit, offset int) (search.Page[model.Contact], error) {
	limit = search.ClampLimit(limit)
	offset = max(offset, 0)
	query = strings.TrimSpace(query)

	if s.index != nil && query != "" {
		page, err := s.searchIndex(ctx, orgID, query, limit, offset)
		if err == nil {
			return page, nil
		}
		slog.WarnContext(ctx, "contact index search failed, falling back to database", "error", err)
	}

	filter := model.ContactFilter{Limit: search.MaxLimit}
	if query != "" {
		filter.Query = &query
	}
	candidates, err := s.contacts.List(ctx, orgID, filter)
	if err != nil {
		return search.Page[model.Contact]{}, fmt.Errorf("searching contacts: %w", err)
	}
	ranked := search.Rank(candidates, query, contactSearchFields)
	return search.Paginate(ranked, limit, offset), nil
}

func (s *contactService) searchIndex(ctx context.Context, orgID int64, query string, limit, offset int) (search.Page[model.Contact], error) {
	ids, total, err := s.index.Search(ctx, orgID, query, limit, offset)
	if err != nil {
		return search.Page[model.Contact]{}, err
	}
	found, err := s.contacts.ListByIDs(ctx, orgID, ids)
	if err != nil {
		return search.Page[model.Contact]{}, fmt.Errorf("loading search hits: %w", err)
	}

	byID := make(map[int64]model.Contact, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	items := make([]model.Contact, 0, len(ids))
	for _, cid := range ids {
		if c, ok := byID[cid]; ok {
			items = append(items, c)
		}
	}
	return search.Page[model.Contact]{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+len(ids) < total,
	}, nil
}

func contactSearchFields(c model.Contact) []string {
	fields := []string{c.FullName()}
	for _, p := range []*string{c.Email, c.Company, c.Phone} {
		if p != nil {
			fields = append(fields, *p)
		}
	}
	return append(fields, c.Tags...)
}

func (s *contactService) PreviewImport(ctx context.Context, filename string, r io.Reader, overrides map[string]importer.Field) (*importer.Preview, error) {
	res, err := parseImport(filename, r, overrides)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "contact import previewed",
		"total_rows", res.TotalRows,
		"valid_rows", res.ValidRows)
	return &res.Preview, nil
}

// CommitImport inserts the valid rows of an upload in one transaction,
// skipping contacts whose email already exists in the organization.
func (s *contactService) CommitImport(ctx context.Context, orgID int64, filename string, r io.Reader, overrides map[string]importer.Field, ownerUserID *int64) (*ImportResult, error) {
	res, err := parseImport(filename, r, overrides)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		if rec.Email != "" {
			emails = append(emails, rec.Email)
		}
	}
	existing, err := s.contacts.ExistingEmails(ctx, orgID, emails)
	if err != nil {
		return nil, fmt.Errorf("checking existing emails: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[strings.ToLower(e)] = true
	}

	result := &ImportResult{Invalid: res.InvalidRows + res.DuplicateRows}
	toCreate := make([]*model.Contact, 0, len(res.Records))
	for _, rec := range res.Records {
		if rec.Email != "" && taken[rec.Email] {
			result.Skipped++
			continue
		}
		toCreate = append(toCreate, contactFromRecord(orgID, rec, ownerUserID))
	}

	if err := s.checkLimit(ctx, orgID, int64(len(toCreate))); err != nil {
		return nil, err
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		for _, c := range toCreate {
			if err := sp.Contacts().Create(ctx, c); err != nil {
				return fmt.Errorf("creating contact from row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Created = len(toCreate)

	for _, c := range toCreate {
		s.afterWrite(ctx, c, model.TriggerContactCreated)
	}

	slog.InfoContext(ctx, "contact import committed",
		"organization_id", orgID,
		"created", result.Created,
		"skipped", result.Skipped,
		"invalid", result.Invalid)
	return result, nil
}

// Reindex pushes every contact of the organization to the search index.
func (s *contactService) Reindex(ctx context.Context, orgID int64) (int, error) {
	if s.index == nil {
		return 0, fmt.Errorf("search index is not configured")
	}
	if err := s.index.EnsureCollection(ctx); err != nil {
		return 0, fmt.Errorf("ensuring collection: %w", err)
	}

	const batch = 500
	var afterID int64
	indexed := 0
	for {
		contacts, err := s.contacts.ListAfter(ctx, orgID, afterID, batch)
		if err != nil {
			return indexed, fmt.Errorf("listing contacts: %w", err)
		}
		for i := range contacts {
			if err := s.index.Upsert(ctx, &contacts[i]); err != nil {
				return indexed, fmt.Errorf("indexing contact %d: %w", contacts[i].ID, err)
			}
			indexed++
		}
		if len(contacts) < batch {
			return indexed, nil
		}
		afterID = contacts[len(contacts)-1].ID
	}
}

func (s *contactService) checkLimit(ctx context.Context, orgID, adding int64) error {
	if s.limits == nil || adding == 0 {
		return nil
	}
	limit, err := s.limits.MaxContacts(ctx, orgID)
	if err != nil {
		return fmt.Errorf("checking contact limit: %w", err)
	}
	if limit <= 0 {
		return nil
	}
	count, err := s.contacts.Count(ctx, orgID, model.ContactFilter{})
	if err != nil {
		return fmt.Errorf("counting contacts: %w", err)
	}
	if count+adding > limit {
		return ErrContactLimitReached
	}
	return nil
}

func (s *contactService) afterWrite(ctx context.Context, c *model.Contact, trigger model.Trigger) {
	if s.index != nil {
		if err := s.index.Upsert(ctx, c); err != nil {
			slog.WarnContext(ctx, "failed to index contact", "error", err, "contact_id", c.ID)
		}
	}
	if s.triggers != nil {
		s.triggers.Emit(ctx, c.OrganizationID, trigger, c.ID)
	}
}

func parseImport(filename string, r io.Reader, overrides map[string]importer.Field) (*importer.Result, error) {
	table, err := importer.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	mapping := importer.GuessMapping(table).WithOverrides(overrides)
	return importer.Process(table, mapping), nil
}

func contactFromRecord(orgID int64, rec importer.Record, ownerUserID *int64) *model.Contact {
	c := &model.Contact{
		ID:             id.New(),
		OrganizationID: orgID,
		OwnerUserID:    ownerUserID,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Email:          ptrOrNil(rec.Email),
		Phone:          ptrOrNil(rec.Phone),
		Company:        ptrOrNil(rec.Company),
		Title:          ptrOrNil(rec.Title),
		State:          ptrOrNil(rec.State),
		Timezone:       ptrOrNil(rec.Timezone),
		Status:         model.ContactStatusLead,
		Tags:           normalizeTags(rec.Tags),
		CustomFields:   rec.CustomFields,
		Source:         "import",
	}
	if c.CustomFields == nil {
		c.CustomFields = map[string]string{}
	}
	return c
}

// normalizeContact validates and canonicalises identity fields in place.
func normalizeContact(c *model.Contact) error {
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	if c.Email != nil {
		if strings.TrimSpace(*c.Email) == "" {
			c.Email = nil
		} else {
			email, ok := importer.NormalizeEmail(*c.Email)
			if !ok {
				return ErrInvalidEmail
			}
			c.Email = &email
		}
	}
	if c.Phone != nil {
		if strings.TrimSpace(*c.Phone) == "" {
			c.Phone = nil
		} else {
			phone, ok := importer.NormalizePhone(*c.Phone)
			if !ok {
				return ErrInvalidPhone
			}
			c.Phone = &phone
		}
	}
	if c.Email == nil && c.Phone == nil {
		return ErrContactIdentity
	}
	if c.Timezone != nil {
		if _, err := time.LoadLocation(*c.Timezone); err != nil {
			return ErrInvalidTimezone
		}
	}
	return nil
}

// normalizeTags lower-cases, trims and dedupes, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return ptrOrNil(*s)
}
