package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("SupportService", func() {
	var (
		svc     service.SupportService
		tickets *mockSupportTicketStore
		ctx     context.Context
	)

	const (
		orgID       = int64(1)
		requesterID = int64(10)
		memberID    = int64(11)
		agentID     = int64(99)
	)

	BeforeEach(func() {
		ctx = context.Background()
		tickets = newMockSupportTicketStore()
		svc = service.NewSupportService(tickets, &mockTxRunner{provider: &mockStoreProvider{tickets: tickets}})
	})

	open := func() *model.SupportTicket {
		detail, err := svc.Create(ctx, orgID, requesterID, service.TicketInput{Subject: "Calls failing", Body: "Since 9am"})
		Expect(err).NotTo(HaveOccurred())
		return detail.Ticket
	}

	It("creates a ticket with its first comment", func() {
		t := open()
		Expect(t.Status).To(Equal(model.TicketStatusOpen))
		Expect(t.Priority).To(Equal(model.TicketPriorityNormal))
		Expect(tickets.comments).To(HaveLen(1))
		Expect(tickets.comments[0].AuthorUserID).To(Equal(requesterID))
	})

	It("requires a subject and body", func() {
		_, err := svc.Create(ctx, orgID, requesterID, service.TicketInput{Subject: "x"})
		Expect(err).To(MatchError(service.ErrInvalidTicket))
	})

	It("hides internal comments from the organization", func() {
		t := open()
		_, err := svc.AgentComment(ctx, t.ID, agentID, "looks like a carrier issue", true)
		Expect(err).NotTo(HaveOccurred())

		orgView, err := svc.GetForOrganization(ctx, orgID, t.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(orgView.Comments).To(HaveLen(1))

		agentView, err := svc.Get(ctx, t.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(agentView.Comments).To(HaveLen(2))
	})

	It("moves an open ticket to pending on a public agent reply", func() {
		t := open()
		_, err := svc.AgentComment(ctx, t.ID, agentID, "can you share a call id?", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(tickets.tickets[t.ID].Status).To(Equal(model.TicketStatusPending))
	})

	It("reopens a resolved ticket when the requester replies", func() {
		t := open()
		_, err := svc.SetStatus(ctx, t.ID, model.TicketStatusResolved)
		Expect(err).NotTo(HaveOccurred())
		Expect(tickets.tickets[t.ID].ResolvedAt).NotTo(BeNil())

		_, err = svc.Comment(ctx, orgID, t.ID, requesterID, "still broken")
		Expect(err).NotTo(HaveOccurred())
		Expect(tickets.tickets[t.ID].Status).To(Equal(model.TicketStatusOpen))
	})

	It("rejects comments on closed tickets", func() {
		t := open()
		_, err := svc.SetStatus(ctx, t.ID, model.TicketStatusClosed)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Comment(ctx, orgID, t.ID, requesterID, "hello?")
		Expect(err).To(MatchError(service.ErrTicketClosed))
	})

	It("leaves a resolved ticket resolved when another member replies", func() {
		t := open()
		_, err := svc.SetStatus(ctx, t.ID, model.TicketStatusResolved)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Comment(ctx, orgID, t.ID, memberID, "thanks")
		Expect(err).NotTo(HaveOccurred())
		Expect(tickets.tickets[t.ID].Status).To(Equal(model.TicketStatusResolved))
	})

	It("keeps closed tickets closed and uncommented", func() {
		t := open()
		_, err := svc.SetStatus(ctx, t.ID, model.TicketStatusClosed)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.AgentComment(ctx, t.ID, agentID, "following up", false)
		Expect(err).To(MatchError(service.ErrTicketClosed))
		Expect(tickets.comments).To(HaveLen(1))
		Expect(tickets.tickets[t.ID].Status).To(Equal(model.TicketStatusClosed))
	})

	It("rejects an empty comment", func() {
		t := open()
		_, err := svc.Comment(ctx, orgID, t.ID, requesterID, "   ")
		Expect(err).To(MatchError(service.ErrEmptyComment))
	})

	It("does not let another organization comment", func() {
		t := open()
		_, err := svc.Comment(ctx, 2, t.ID, requesterID, "hi")
		Expect(err).To(MatchError(service.ErrTicketNotFound))
		Expect(tickets.comments).To(HaveLen(1))
	})

	It("scopes organization access to the owning organization", func() {
		t := open()
		_, err := svc.GetForOrganization(ctx, 2, t.ID)
		Expect(err).To(MatchError(service.ErrTicketNotFound))
	})

	It("maps unknown tickets to ErrTicketNotFound", func() {
		_, err := svc.Assign(ctx, 12345, int64Ptr(agentID))
		Expect(err).To(MatchError(service.ErrTicketNotFound))
		_, err = tickets.GetByID(ctx, 12345)
		Expect(err).To(MatchError(store.ErrNotFound))
	})
})
