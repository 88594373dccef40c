package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		svc         service.OrganizationService
		mockOrg     *mockOrganizationStore
		mockMembers *mockMembershipStore
		mockSubs    *mockSubscriptionStore
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockOrg = &mockOrganizationStore{}
		mockMembers = &mockMembershipStore{}
		mockSubs = &mockSubscriptionStore{}
		catalog, err := billing.DefaultCatalog()
		Expect(err).NotTo(HaveOccurred())
		tx := &mockTxRunner{provider: &mockStoreProvider{
			orgs:          mockOrg,
			memberships:   mockMembers,
			subscriptions: mockSubs,
		}}
		svc = service.NewOrganizationService(tx, mockOrg, catalog)
	})

	It("creates organization with provided slug", func() {
		mockOrg.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
			Expect(slug).To(Equal("custom-slug"))
			return nil, store.ErrNotFound
		}

		org, err := svc.Create(ctx, "Acme", strPtr("custom-slug"), 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(org.Slug).To(Equal("custom-slug"))
		Expect(org.OwnerUserID).To(Equal(int64(10)))
		Expect(org.Status).To(Equal(model.OrganizationStatusActive))
		Expect(mockOrg.createCalls).To(Equal(1))
	})

	It("adds the creator as owner and starts a trial", func() {
		org, err := svc.Create(ctx, "Acme Corp", nil, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(org.Slug).To(Equal("acme-corp"))

		Expect(mockMembers.created).To(HaveLen(1))
		Expect(mockMembers.created[0].UserID).To(Equal(int64(10)))
		Expect(mockMembers.created[0].Role).To(Equal(model.RoleOwner))

		Expect(mockSubs.created).To(HaveLen(1))
		sub := mockSubs.created[0]
		Expect(sub.OrganizationID).To(Equal(org.ID))
		Expect(sub.PlanCode).To(Equal("starter"))
		Expect(sub.Status).To(Equal(model.SubscriptionStatusTrialing))
		Expect(sub.CurrentPeriodEnd.Sub(sub.CurrentPeriodStart).Hours()).To(BeNumerically("==", 14*24))
	})

	It("adds a numeric suffix when the slug is taken", func() {
		mockOrg.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
			if slug == "acme" || slug == "acme-1" {
				return &model.Organization{Slug: slug}, nil
			}
			return nil, store.ErrNotFound
		}

		org, err := svc.Create(ctx, "Acme", nil, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(org.Slug).To(Equal("acme-2"))
	})

	It("rejects a blank name", func() {
		_, err := svc.Create(ctx, "   ", nil, 10)
		Expect(err).To(MatchError(service.ErrOrganizationName))
		Expect(mockOrg.createCalls).To(BeZero())
	})

	It("propagates store errors from inside the transaction", func() {
		mockOrg.createFn = func(_ context.Context, _ *model.Organization) error {
			return errors.New("db down")
		}

		_, err := svc.Create(ctx, "Acme", nil, 10)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("creating organization"))
		Expect(mockMembers.created).To(BeEmpty())
	})

	It("maps a missing organization to ErrOrganizationNotFound", func() {
		mockOrg.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
			return nil, store.ErrNotFound
		}

		_, err := svc.Get(ctx, 99)
		Expect(err).To(MatchError(service.ErrOrganizationNotFound))
	})

	It("trims the name on update", func() {
		org, err := svc.Update(ctx, 5, "  Renamed  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(org.Name).To(Equal("Renamed"))
	})
})

var _ = Describe("MemberService", func() {
	var (
		svc         service.MemberService
		mockMembers *mockMembershipStore
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockMembers = &mockMembershipStore{}
		svc = service.NewMemberService(&mockTxRunner{provider: &mockStoreProvider{memberships: mockMembers}}, mockMembers)
	})

	owner := func(_ context.Context, orgID, userID int64) (*model.Membership, error) {
		return &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleOwner}, nil
	}

	It("refuses to demote the last owner", func() {
		mockMembers.getFn = owner
		_, err := svc.UpdateRole(ctx, 1, 2, model.RoleAdmin)
		Expect(err).To(MatchError(service.ErrLastOwner))
	})

	It("refuses to remove the last owner", func() {
		mockMembers.getFn = owner
		Expect(svc.Remove(ctx, 1, 2)).To(MatchError(service.ErrLastOwner))
	})

	It("demotes an owner when another owner remains", func() {
		mockMembers.getFn = owner
		mockMembers.countOwnersFn = func(_ context.Context, _ int64) (int64, error) { return 2, nil }

		m, err := svc.UpdateRole(ctx, 1, 2, model.RoleMember)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Role).To(Equal(model.RoleMember))
	})

	It("changes a member's role without counting owners", func() {
		mockMembers.getFn = func(_ context.Context, orgID, userID int64) (*model.Membership, error) {
			return &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleMember}, nil
		}
		mockMembers.countOwnersFn = func(_ context.Context, _ int64) (int64, error) {
			Fail("owners should not be counted")
			return 0, nil
		}

		m, err := svc.UpdateRole(ctx, 1, 2, model.RoleAdmin)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Role).To(Equal(model.RoleAdmin))
	})

	It("returns ErrMemberNotFound for unknown members", func() {
		Expect(svc.Remove(ctx, 1, 2)).To(MatchError(service.ErrMemberNotFound))
	})
})
