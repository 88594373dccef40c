package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrInvalidTicket   = errors.New("ticket needs a subject and a message")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrTicketStatus    = errors.New("invalid ticket status")
	ErrEmptyComment    = errors.New("comment body is required")
	ErrTicketClosed    = errors.New("ticket is closed")
)

type TicketInput struct {
	Subject  string
	Body     string
	Priority model.TicketPriority
}

type TicketDetail struct {
	Ticket   *model.SupportTicket  `json:"ticket"`
	Comments []model.TicketComment `json:"comments"`
}

type SupportService interface {
	Create(ctx context.Context, orgID, requesterID int64, in TicketInput) (*TicketDetail, error)
	ListForOrganization(ctx context.Context, orgID int64, status *model.TicketStatus, limit, offset int) ([]model.SupportTicket, error)
	// GetForOrganization hides internal comments.
	GetForOrganization(ctx context.Context, orgID, id int64) (*TicketDetail, error)
	// Comment adds a member comment. A requester comment reopens a resolved ticket.
	Comment(ctx context.Context, orgID, ticketID, authorID int64, body string) (*model.TicketComment, error)

	List(ctx context.Context, status *model.TicketStatus, limit, offset int) ([]model.SupportTicket, error)
	Get(ctx context.Context, id int64) (*TicketDetail, error)
	AgentComment(ctx context.Context, ticketID, authorID int64, body string, internal bool) (*model.TicketComment, error)
	Assign(ctx context.Context, id int64, assigneeID *int64) (*model.SupportTicket, error)
	SetStatus(ctx context.Context, id int64, status model.TicketStatus) (*model.SupportTicket, error)
}

type supportService struct {
	tickets  store.SupportTicketStore
	txRunner TxRunner
	now      func() time.Time
}

func NewSupportService(tickets store.SupportTicketStore, txRunner TxRunner) SupportService {
	return &supportService{tickets: tickets, txRunner: txRunner, now: time.Now}
}

func (s *supportService) Create(ctx context.Context, orgID, requesterID int64, in TicketInput) (*TicketDetail, error) {
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Body)
	if subject == "" || body == "" {
		return nil, ErrInvalidTicket
	}
	priority := in.Priority
	if priority == "" {
		priority = model.TicketPriorityNormal
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	ticket := &model.SupportTicket{
		ID:              id.New(),
		OrganizationID:  orgID,
		RequesterUserID: requesterID,
		Subject:         subject,
		Status:          model.TicketStatusOpen,
		Priority:        priority,
	}
	comment := model.TicketComment{
		ID:           id.New(),
		TicketID:     ticket.ID,
		AuthorUserID: requesterID,
		Body:         body,
	}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.SupportTickets().Create(ctx, ticket); err != nil {
			return fmt.Errorf("creating ticket: %w", err)
		}
		if err := sp.SupportTickets().AddComment(ctx, &comment); err != nil {
			return fmt.Errorf("adding first comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "support ticket created", "ticket_id", ticket.ID, "priority", priority)
	return &TicketDetail{Ticket: ticket, Comments: []model.TicketComment{comment}}, nil
}

func (s *supportService) ListForOrganization(ctx context.Context, orgID int64, status *model.TicketStatus, limit, offset int) ([]model.SupportTicket, error) {
	if status != nil && !status.Valid() {
		return nil, ErrTicketStatus
	}
	l, o := pageBounds(limit, offset)
	tickets, err := s.tickets.ListByOrganization(ctx, orgID, status, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return tickets, nil
}

func (s *supportService) GetForOrganization(ctx context.Context, orgID, id int64) (*TicketDetail, error) {
	ticket, err := s.orgTicket(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, ticket, false)
}

func (s *supportService) Comment(ctx context.Context, orgID, ticketID, authorID int64, body string) (*model.TicketComment, error) {
	ticket, err := s.orgTicket(ctx, orgID, ticketID)
	if err != nil {
		return nil, err
	}
	comment, err := s.addComment(ctx, ticket, authorID, body, false)
	if err != nil {
		return nil, err
	}

	if ticket.Status == model.TicketStatusResolved && authorID == ticket.RequesterUserID {
		if _, err := s.tickets.UpdateStatus(ctx, ticket.ID, model.TicketStatusOpen, nil); err != nil {
			return nil, fmt.Errorf("reopening ticket: %w", err)
		}
		slog.InfoContext(ctx, "ticket reopened by requester", "ticket_id", ticket.ID)
	}
	return comment, nil
}

func (s *supportService) List(ctx context.Context, status *model.TicketStatus, limit, offset int) ([]model.SupportTicket, error) {
	if status != nil && !status.Valid() {
		return nil, ErrTicketStatus
	}
	l, o := pageBounds(limit, offset)
	tickets, err := s.tickets.List(ctx, status, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return tickets, nil
}

func (s *supportService) Get(ctx context.Context, id int64) (*TicketDetail, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, ticket, true)
}

// AgentComment adds a platform-side comment. A public reply on an open ticket
// marks it pending on the requester.
func (s *supportService) AgentComment(ctx context.Context, ticketID, authorID int64, body string, internal bool) (*model.TicketComment, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	comment, err := s.addComment(ctx, ticket, authorID, body, internal)
	if err != nil {
		return nil, err
	}
	if !internal && ticket.Status == model.TicketStatusOpen {
		if _, err := s.tickets.UpdateStatus(ctx, ticket.ID, model.TicketStatusPending, nil); err != nil {
			return nil, fmt.Errorf("updating ticket status: %w", err)
		}
	}
	return comment, nil
}

func (s *supportService) Assign(ctx context.Context, id int64, assigneeID *int64) (*model.SupportTicket, error) {
	if _, err := s.getTicket(ctx, id); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.Assign(ctx, id, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("assigning ticket: %w", err)
	}
	return ticket, nil
}

func (s *supportService) SetStatus(ctx context.Context, id int64, status model.TicketStatus) (*model.SupportTicket, error) {
	if !status.Valid() {
		return nil, ErrTicketStatus
	}
	if _, err := s.getTicket(ctx, id); err != nil {
		return nil, err
	}

	var resolvedAt *time.Time
	if status == model.TicketStatusResolved || status == model.TicketStatusClosed {
		now := s.now()
		resolvedAt = &now
	}
	ticket, err := s.tickets.UpdateStatus(ctx, id, status, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("updating ticket status: %w", err)
	}
	slog.InfoContext(ctx, "ticket status changed", "ticket_id", id, "status", status)
	return ticket, nil
}

func (s *supportService) addComment(ctx context.Context, ticket *model.SupportTicket, authorID int64, body string, internal bool) (*model.TicketComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyComment
	}
	if ticket.Status == model.TicketStatusClosed {
		return nil, ErrTicketClosed
	}
	comment := &model.TicketComment{
		ID:           id.New(),
		TicketID:     ticket.ID,
		AuthorUserID: authorID,
		Body:         body,
		Internal:     internal,
	}
	if err := s.tickets.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	if err := s.tickets.Touch(ctx, ticket.ID); err != nil {
		slog.WarnContext(ctx, "failed to touch ticket", "error", err, "ticket_id", ticket.ID)
	}
	return comment, nil
}

func (s *supportService) detail(ctx context.Context, ticket *model.SupportTicket, includeInternal bool) (*TicketDetail, error) {
	comments, err := s.tickets.ListComments(ctx, ticket.ID, includeInternal)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return &TicketDetail{Ticket: ticket, Comments: comments}, nil
}

func (s *supportService) orgTicket(ctx context.Context, orgID, id int64) (*model.SupportTicket, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.OrganizationID != orgID {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *supportService) getTicket(ctx context.Context, id int64) (*model.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("getting ticket: %w", err)
	}
	return ticket, nil
}
