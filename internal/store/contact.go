package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type contactStore struct {
	queries *sqlc.Queries
}

func newContactStore(queries *sqlc.Queries) ContactStore {
	return &contactStore{queries: queries}
}

func (s *contactStore) Create(ctx context.Context, c *model.Contact) error {
	fields, err := marshalCustomFields(c.CustomFields)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateContact(ctx, sqlc.CreateContactParams{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		OwnerUserID:    c.OwnerUserID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Title:          c.Title,
		State:          c.State,
		Timezone:       c.Timezone,
		Status:         string(c.Status),
		Tags:           nonNilTags(c.Tags),
		CustomFields:   fields,
		DoNotCall:      c.DoNotCall,
		Source:         c.Source,
	})
	if err != nil {
		return err
	}
	*c = *toContactModel(row)
	return nil
}

func (s *contactStore) GetByID(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	row, err := s.queries.GetContact(ctx, sqlc.GetContactParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) GetByEmail(ctx context.Context, orgID int64, email string) (*model.Contact, error) {
	row, err := s.queries.GetContactByEmail(ctx, sqlc.GetContactByEmailParams{OrganizationID: orgID, Email: email})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) Update(ctx context.Context, c *model.Contact) error {
	fields, err := marshalCustomFields(c.CustomFields)
	if err != nil {
		return err
	}
	row, err := s.queries.UpdateContact(ctx, sqlc.UpdateContactParams{
		OwnerUserID:    c.OwnerUserID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Title:          c.Title,
		State:          c.State,
		Timezone:       c.Timezone,
		Status:         string(c.Status),
		Tags:           nonNilTags(c.Tags),
		CustomFields:   fields,
		DoNotCall:      c.DoNotCall,
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*c = *toContactModel(row)
	return nil
}

func (s *contactStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteContact(ctx, sqlc.DeleteContactParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *contactStore) List(ctx context.Context, orgID int64, filter model.ContactFilter) ([]model.Contact, error) {
	rows, err := s.queries.ListContacts(ctx, sqlc.ListContactsParams{
		OrganizationID: orgID,
		Status:         stringPtr(filter.Status),
		Tag:            filter.Tag,
		OwnerUserID:    filter.OwnerUserID,
		Query:          filter.Query,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toContactModels(rows), nil
}

func (s *contactStore) Count(ctx context.Context, orgID int64, filter model.ContactFilter) (int64, error) {
	return s.queries.CountContacts(ctx, sqlc.CountContactsParams{
		OrganizationID: orgID,
		Status:         stringPtr(filter.Status),
		Tag:            filter.Tag,
		OwnerUserID:    filter.OwnerUserID,
		Query:          filter.Query,
	})
}

func (s *contactStore) ListByIDs(ctx context.Context, orgID int64, ids []int64) ([]model.Contact, error) {
	rows, err := s.queries.ListContactsByIDs(ctx, sqlc.ListContactsByIDsParams{OrganizationID: orgID, Ids: ids})
	if err != nil {
		return nil, err
	}
	return toContactModels(rows), nil
}

func (s *contactStore) ListAfter(ctx context.Context, orgID, afterID int64, limit int32) ([]model.Contact, error) {
	rows, err := s.queries.ListContactsAfter(ctx, sqlc.ListContactsAfterParams{
		OrganizationID: orgID,
		AfterID:        afterID,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	return toContactModels(rows), nil
}

func (s *contactStore) ExistingEmails(ctx context.Context, orgID int64, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	return s.queries.ListExistingContactEmails(ctx, sqlc.ListExistingContactEmailsParams{
		OrganizationID: orgID,
		Emails:         emails,
	})
}

func (s *contactStore) SetTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error) {
	row, err := s.queries.SetContactTags(ctx, sqlc.SetContactTagsParams{
		Tags:           nonNilTags(tags),
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) SetStatus(ctx context.Context, orgID, id int64, status model.ContactStatus) (*model.Contact, error) {
	row, err := s.queries.SetContactStatus(ctx, sqlc.SetContactStatusParams{
		Status:         string(status),
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) SetOwner(ctx context.Context, orgID, id int64, ownerID *int64) (*model.Contact, error) {
	row, err := s.queries.SetContactOwner(ctx, sqlc.SetContactOwnerParams{
		OwnerUserID:    ownerID,
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) CountAll(ctx context.Context) (int64, error) {
	return s.queries.CountAllContacts(ctx)
}

func marshalCustomFields(fields map[string]string) ([]byte, error) {
	if fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(fields)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func toContactModel(row sqlc.Contact) *model.Contact {
	return &model.Contact{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		OwnerUserID:    row.OwnerUserID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		Phone:          row.Phone,
		Company:        row.Company,
		Title:          row.Title,
		State:          row.State,
		Timezone:       row.Timezone,
		Status:         model.ContactStatus(row.Status),
		Tags:           nonNilTags(row.Tags),
		CustomFields:   decodeCustomFields(row.ID, row.CustomFields),
		DoNotCall:      row.DoNotCall,
		Source:         row.Source,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func decodeCustomFields(contactID int64, raw []byte) map[string]string {
	fields := map[string]string{}
	if len(raw) == 0 {
		return fields
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		slog.Warn("dropping undecodable contact custom fields", "contact_id", contactID, "error", err)
		return map[string]string{}
	}
	return fields
}

func toContactModels(rows []sqlc.Contact) []model.Contact {
	result := make([]model.Contact, len(rows))
	for i, row := range rows {
		result[i] = *toContactModel(row)
	}
	return result
}
