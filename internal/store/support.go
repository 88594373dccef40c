package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type supportTicketStore struct {
	queries *sqlc.Queries
}

func newSupportTicketStore(queries *sqlc.Queries) SupportTicketStore {
	return &supportTicketStore{queries: queries}
}

func (s *supportTicketStore) Create(ctx context.Context, t *model.SupportTicket) error {
	row, err := s.queries.CreateTicket(ctx, sqlc.CreateTicketParams{
		ID:              t.ID,
		OrganizationID:  t.OrganizationID,
		RequesterUserID: t.RequesterUserID,
		Subject:         t.Subject,
		Priority:        string(t.Priority),
	})
	if err != nil {
		return err
	}
	*t = *toSupportTicketModel(row)
	return nil
}

func (s *supportTicketStore) GetByID(ctx context.Context, id int64) (*model.SupportTicket, error) {
	row, err := s.queries.GetTicket(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSupportTicketModel(row), nil
}

func (s *supportTicketStore) ListByOrganization(ctx context.Context, orgID int64, status *model.TicketStatus, limit, offset int32) ([]model.SupportTicket, error) {
	rows, err := s.queries.ListTicketsByOrganization(ctx, sqlc.ListTicketsByOrganizationParams{
		OrganizationID: orgID,
		Status:         stringPtr(status),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	return toSupportTicketModels(rows), nil
}

func (s *supportTicketStore) List(ctx context.Context, status *model.TicketStatus, limit, offset int32) ([]model.SupportTicket, error) {
	rows, err := s.queries.ListTickets(ctx, sqlc.ListTicketsParams{
		Status: stringPtr(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toSupportTicketModels(rows), nil
}

func (s *supportTicketStore) UpdateStatus(ctx context.Context, id int64, status model.TicketStatus, resolvedAt *time.Time) (*model.SupportTicket, error) {
	row, err := s.queries.UpdateTicketStatus(ctx, sqlc.UpdateTicketStatusParams{
		Status:     string(status),
		ResolvedAt: nullTimestamptz(resolvedAt),
		ID:         id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSupportTicketModel(row), nil
}

func (s *supportTicketStore) Assign(ctx context.Context, id int64, assigneeID *int64) (*model.SupportTicket, error) {
	row, err := s.queries.AssignTicket(ctx, sqlc.AssignTicketParams{
		AssigneeUserID: assigneeID,
		ID:             id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSupportTicketModel(row), nil
}

func (s *supportTicketStore) Touch(ctx context.Context, id int64) error {
	return s.queries.TouchTicket(ctx, id)
}

func (s *supportTicketStore) AddComment(ctx context.Context, c *model.TicketComment) error {
	row, err := s.queries.CreateTicketComment(ctx, sqlc.CreateTicketCommentParams{
		ID:           c.ID,
		TicketID:     c.TicketID,
		AuthorUserID: c.AuthorUserID,
		Body:         c.Body,
		Internal:     c.Internal,
	})
	if err != nil {
		return err
	}
	*c = *toTicketCommentModel(row)
	return nil
}

func (s *supportTicketStore) ListComments(ctx context.Context, ticketID int64, includeInternal bool) ([]model.TicketComment, error) {
	rows, err := s.queries.ListTicketComments(ctx, sqlc.ListTicketCommentsParams{
		TicketID:        ticketID,
		IncludeInternal: includeInternal,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.TicketComment, len(rows))
	for i, row := range rows {
		result[i] = *toTicketCommentModel(row)
	}
	return result, nil
}

func toSupportTicketModel(row sqlc.SupportTicket) *model.SupportTicket {
	return &model.SupportTicket{
		ID:              row.ID,
		OrganizationID:  row.OrganizationID,
		RequesterUserID: row.RequesterUserID,
		AssigneeUserID:  row.AssigneeUserID,
		Subject:         row.Subject,
		Status:          model.TicketStatus(row.Status),
		Priority:        model.TicketPriority(row.Priority),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
		ResolvedAt:      timePtr(row.ResolvedAt),
	}
}

func toSupportTicketModels(rows []sqlc.SupportTicket) []model.SupportTicket {
	result := make([]model.SupportTicket, len(rows))
	for i, row := range rows {
		result[i] = *toSupportTicketModel(row)
	}
	return result
}

func toTicketCommentModel(row sqlc.TicketComment) *model.TicketComment {
	return &model.TicketComment{
		ID:           row.ID,
		TicketID:     row.TicketID,
		AuthorUserID: row.AuthorUserID,
		Body:         row.Body,
		Internal:     row.Internal,
		CreatedAt:    row.CreatedAt.Time,
	}
}
