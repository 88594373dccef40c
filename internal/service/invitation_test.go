package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("InvitationService", func() {
	var (
		svc          service.InvitationService
		mockInv      *mockInvitationStore
		mockMembers  *mockMembershipStore
		notifier     *mockNotifier
		ctx          context.Context
		dashboardURL string
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockInv = &mockInvitationStore{}
		mockMembers = &mockMembershipStore{}
		notifier = &mockNotifier{}
		dashboardURL = "https://app.switchyard.test"
		tx := &mockTxRunner{provider: &mockStoreProvider{invitations: mockInv, memberships: mockMembers}}
		svc = service.NewInvitationService(mockInv, &mockOrganizationStore{}, tx, notifier, dashboardURL)
	})

	pending := func(email string) *model.Invitation {
		return &model.Invitation{
			ID:             42,
			OrganizationID: 1,
			Email:          email,
			Role:           model.RoleAdmin,
			Token:          "tok",
			Status:         model.InvitationStatusPending,
			ExpiresAt:      time.Now().Add(time.Hour),
		}
	}

	Describe("Create", func() {
		It("creates an invitation with a generated token and emails it", func() {
			var captured *model.Invitation
			mockInv.createFn = func(_ context.Context, inv *model.Invitation) error {
				captured = inv
				return nil
			}

			inv, inviteURL, err := svc.Create(ctx, 1, "test@example.com", model.RoleAdmin, int64Ptr(9))
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.ID).NotTo(BeZero())
			Expect(inv.Token).NotTo(BeEmpty())
			Expect(inv.Role).To(Equal(model.RoleAdmin))
			Expect(inv.Status).To(Equal(model.InvitationStatusPending))
			Expect(*inv.InvitedBy).To(Equal(int64(9)))
			Expect(inviteURL).To(HavePrefix(dashboardURL + "/invite?token="))
			Expect(captured).To(Equal(inv))

			Expect(notifier.sent).To(HaveLen(1))
			Expect(notifier.sent[0].To).To(Equal("test@example.com"))
			Expect(notifier.sent[0].Subject).To(ContainSubstring("Acme"))
			Expect(notifier.sent[0].Text).To(ContainSubstring(inviteURL))
		})

		It("normalizes email and defaults the role to member", func() {
			mockInv.getPendingByEmailFn = func(_ context.Context, _ int64, email string) (*model.Invitation, error) {
				Expect(email).To(Equal("test@example.com"))
				return nil, store.ErrNotFound
			}

			inv, _, err := svc.Create(ctx, 1, "  TEST@EXAMPLE.COM  ", "", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Email).To(Equal("test@example.com"))
			Expect(inv.Role).To(Equal(model.RoleMember))
		})

		It("sets expiry seven days out", func() {
			inv, _, err := svc.Create(ctx, 1, "test@example.com", model.RoleMember, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.ExpiresAt).To(BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))
		})

		It("rejects a duplicate pending invitation", func() {
			mockInv.getPendingByEmailFn = func(_ context.Context, _ int64, email string) (*model.Invitation, error) {
				return pending(email), nil
			}

			_, _, err := svc.Create(ctx, 1, "test@example.com", model.RoleMember, nil)
			Expect(err).To(MatchError(service.ErrInvitePendingExists))
		})

		It("allows re-inviting when the previous invitation expired", func() {
			mockInv.getPendingByEmailFn = func(_ context.Context, _ int64, email string) (*model.Invitation, error) {
				inv := pending(email)
				inv.ExpiresAt = time.Now().Add(-time.Hour)
				return inv, nil
			}

			_, _, err := svc.Create(ctx, 1, "test@example.com", model.RoleMember, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an invalid email", func() {
			_, _, err := svc.Create(ctx, 1, "not-an-email", model.RoleMember, nil)
			Expect(err).To(MatchError(service.ErrInvalidEmail))
		})

		It("still succeeds when the email cannot be sent", func() {
			notifier.err = errors.New("smtp down")
			_, _, err := svc.Create(ctx, 1, "test@example.com", model.RoleMember, nil)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ValidateToken", func() {
		It("returns a valid invitation", func() {
			mockInv.getValidByTokenFn = func(_ context.Context, _ string) (*model.Invitation, error) {
				return pending("a@example.com"), nil
			}

			inv, err := svc.ValidateToken(ctx, "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.ID).To(Equal(int64(42)))
		})

		DescribeTable("explains why a token is unusable",
			func(status model.InvitationStatus, expiresIn time.Duration, want error) {
				mockInv.getByTokenFn = func(_ context.Context, _ string) (*model.Invitation, error) {
					inv := pending("a@example.com")
					inv.Status = status
					inv.ExpiresAt = time.Now().Add(expiresIn)
					return inv, nil
				}

				_, err := svc.ValidateToken(ctx, "tok")
				Expect(err).To(MatchError(want))
			},
			Entry("accepted", model.InvitationStatusAccepted, time.Hour, service.ErrInviteAlreadyUsed),
			Entry("revoked", model.InvitationStatusRevoked, time.Hour, service.ErrInviteRevoked),
			Entry("marked expired", model.InvitationStatusExpired, time.Hour, service.ErrInviteExpired),
			Entry("pending past expiry", model.InvitationStatusPending, -time.Hour, service.ErrInviteExpired),
		)

		It("returns ErrInviteNotFound for unknown tokens", func() {
			_, err := svc.ValidateToken(ctx, "missing")
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})
	})

	Describe("Accept", func() {
		BeforeEach(func() {
			mockInv.getValidByTokenFn = func(_ context.Context, _ string) (*model.Invitation, error) {
				return pending("user@example.com"), nil
			}
		})

		It("creates a membership with the invited role", func() {
			user := &model.User{ID: 5, Email: "User@Example.com"}

			inv, err := svc.Accept(ctx, "tok", user)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Status).To(Equal(model.InvitationStatusAccepted))
			Expect(mockMembers.created).To(HaveLen(1))
			Expect(mockMembers.created[0].OrganizationID).To(Equal(int64(1)))
			Expect(mockMembers.created[0].UserID).To(Equal(int64(5)))
			Expect(mockMembers.created[0].Role).To(Equal(model.RoleAdmin))
		})

		It("keeps an existing membership untouched", func() {
			mockMembers.getFn = func(_ context.Context, orgID, userID int64) (*model.Membership, error) {
				return &model.Membership{OrganizationID: orgID, UserID: userID, Role: model.RoleOwner}, nil
			}

			_, err := svc.Accept(ctx, "tok", &model.User{ID: 5, Email: "user@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockMembers.created).To(BeEmpty())
		})

		It("rejects a different email", func() {
			_, err := svc.Accept(ctx, "tok", &model.User{ID: 5, Email: "other@example.com"})
			Expect(err).To(MatchError(service.ErrEmailMismatch))
			Expect(mockMembers.created).To(BeEmpty())
		})

		It("reports a concurrent acceptance as already used", func() {
			mockInv.acceptFn = func(_ context.Context, _, _ int64) (*model.Invitation, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Accept(ctx, "tok", &model.User{ID: 5, Email: "user@example.com"})
			Expect(err).To(MatchError(service.ErrInviteAlreadyUsed))
		})
	})

	Describe("Revoke", func() {
		It("rejects invitations from another organization", func() {
			mockInv.getByIDFn = func(_ context.Context, id int64) (*model.Invitation, error) {
				inv := pending("a@example.com")
				inv.OrganizationID = 2
				return inv, nil
			}
			mockInv.revokeFn = func(_ context.Context, _ int64) (*model.Invitation, error) {
				Fail("revoke should not be called")
				return nil, nil
			}

			_, err := svc.Revoke(ctx, int64Ptr(1), 42)
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})

		It("revokes without an org check for platform callers", func() {
			inv, err := svc.Revoke(ctx, nil, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Status).To(Equal(model.InvitationStatusRevoked))
		})
	})

	It("expires stale invitations", func() {
		mockInv.expireOldFn = func(_ context.Context) (int64, error) { return 3, nil }

		n, err := svc.ExpireOld(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
	})
})
