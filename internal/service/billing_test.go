package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("BillingService", func() {
	var (
		svc      service.BillingService
		subs     *mockSubscriptionStore
		invoices *mockInvoiceStore
		users    *mockUserStore
		notifier *mockNotifier
		rows     map[int64]*model.Subscription
		ctx      context.Context
	)

	periodEnd := time.Now().Add(-time.Hour).UTC()
	periodStart := periodEnd.AddDate(0, -1, 0)

	BeforeEach(func() {
		ctx = context.Background()
		rows = map[int64]*model.Subscription{}
		subs = &mockSubscriptionStore{}
		subs.listDueFn = func(_ context.Context, _ time.Time, _ int32) ([]model.Subscription, error) {
			out := make([]model.Subscription, 0, len(rows))
			for _, s := range rows {
				out = append(out, *s)
			}
			return out, nil
		}
		subs.lockFn = func(_ context.Context, id int64) (*model.Subscription, error) {
			s, ok := rows[id]
			if !ok {
				return nil, store.ErrNotFound
			}
			copied := *s
			return &copied, nil
		}
		invoices = &mockInvoiceStore{}
		users = &mockUserStore{getByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "owner@example.com"}, nil
		}}
		notifier = &mockNotifier{}

		catalog, err := billing.DefaultCatalog()
		Expect(err).NotTo(HaveOccurred())
		tx := &mockTxRunner{provider: &mockStoreProvider{subscriptions: subs, invoices: invoices}}
		svc = service.NewBillingService(catalog, subs, invoices, &mockOrganizationStore{}, users, tx, nil, notifier)
	})

	sub := func(id int64, status model.SubscriptionStatus) *model.Subscription {
		s := &model.Subscription{
			ID:                 id,
			OrganizationID:     id * 10,
			PlanCode:           "starter",
			Status:             status,
			Seats:              1,
			CurrentPeriodStart: periodStart,
			CurrentPeriodEnd:   periodEnd,
		}
		rows[id] = s
		return s
	}

	Describe("RunCycle", func() {
		It("activates a finished trial without invoicing", func() {
			sub(1, model.SubscriptionStatusTrialing)
			var advanced model.SubscriptionStatus
			subs.advanceFn = func(_ context.Context, id int64, status model.SubscriptionStatus, start, end time.Time) (*model.Subscription, error) {
				advanced = status
				Expect(start).To(Equal(periodEnd))
				Expect(end).To(Equal(billing.NextPeriodEnd(periodEnd, periodEnd.Day())))
				return &model.Subscription{ID: id, Status: status}, nil
			}

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Activated).To(Equal(1))
			Expect(summary.Invoices).To(BeZero())
			Expect(advanced).To(Equal(model.SubscriptionStatusActive))
			Expect(invoices.created).To(BeEmpty())
			Expect(notifier.sent).To(BeEmpty())
		})

		It("invoices base, extra seats and overage, then renews", func() {
			s := sub(2, model.SubscriptionStatusActive)
			s.Seats = 3
			s.MinutesUsed = 600

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Renewed).To(Equal(1))
			Expect(summary.Invoices).To(Equal(1))

			Expect(invoices.created).To(HaveLen(1))
			inv := invoices.created[0]
			Expect(inv.ID).NotTo(BeZero())
			Expect(inv.BaseCents).To(Equal(int64(4900)))
			Expect(inv.SeatCents).To(Equal(int64(1900)))
			Expect(inv.OverageMinutes).To(Equal(int32(100)))
			Expect(inv.OverageCents).To(Equal(int64(900)))
			Expect(inv.TotalCents).To(Equal(int64(7700)))
			Expect(inv.IdempotencyKey).To(Equal(billing.InvoiceKey(2, periodEnd)))

			Expect(notifier.sent).To(HaveLen(1))
			Expect(notifier.sent[0].To).To(Equal("owner@example.com"))
			Expect(notifier.sent[0].Text).To(ContainSubstring("77.00"))
		})

		It("cancels at period end with a final invoice", func() {
			s := sub(3, model.SubscriptionStatusActive)
			s.CancelAtPeriodEnd = true
			var setTo model.SubscriptionStatus
			subs.setStatusFn = func(_ context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error) {
				setTo = status
				return &model.Subscription{ID: id, Status: status}, nil
			}
			subs.advanceFn = func(context.Context, int64, model.SubscriptionStatus, time.Time, time.Time) (*model.Subscription, error) {
				Fail("a canceled subscription must not advance")
				return nil, nil
			}

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Canceled).To(Equal(1))
			Expect(summary.Invoices).To(Equal(1))
			Expect(setTo).To(Equal(model.SubscriptionStatusCanceled))
		})

		It("does not re-announce an invoice that already exists", func() {
			sub(4, model.SubscriptionStatusActive)
			invoices.createIfAbsentFn = func(context.Context, *model.Invoice) (bool, error) { return false, nil }

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Renewed).To(Equal(1))
			Expect(summary.Invoices).To(BeZero())
			Expect(notifier.sent).To(BeEmpty())
		})

		It("skips subscriptions another run already advanced", func() {
			s := sub(5, model.SubscriptionStatusActive)
			subs.lockFn = func(_ context.Context, id int64) (*model.Subscription, error) {
				moved := *s
				moved.CurrentPeriodEnd = time.Now().Add(24 * time.Hour)
				return &moved, nil
			}

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Processed).To(BeZero())
			Expect(summary.Failed).To(BeZero())
		})

		It("counts failures and keeps going", func() {
			sub(6, model.SubscriptionStatusActive)
			sub(7, model.SubscriptionStatusTrialing)
			subs.lockFn = func(_ context.Context, id int64) (*model.Subscription, error) {
				if id == 6 {
					return nil, store.ErrNotFound
				}
				copied := *rows[id]
				return &copied, nil
			}

			summary, err := svc.RunCycle(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Failed).To(Equal(1))
			Expect(summary.Activated).To(Equal(1))
		})
	})

	Describe("MaxContacts", func() {
		It("reads the limit from the organization's plan", func() {
			subs.getByOrganizationFn = func(_ context.Context, orgID int64) (*model.Subscription, error) {
				return &model.Subscription{OrganizationID: orgID, PlanCode: "growth"}, nil
			}

			limit, err := svc.MaxContacts(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(limit).To(Equal(int64(25000)))
		})

		It("is unlimited without a subscription", func() {
			limit, err := svc.MaxContacts(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(limit).To(BeZero())
		})
	})

	It("refuses checkout for unknown plans", func() {
		_, err := svc.Checkout(ctx, 1, "enterprise", 1, "owner@example.com")
		Expect(err).To(MatchError(billing.ErrUnknownPlan))
	})
})
