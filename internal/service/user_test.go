package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc       service.UserService
		mockUsers *mockUserStore
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockUsers = &mockUserStore{}
		svc = service.NewUserService(mockUsers)
	})

	It("normalizes the email before lookup", func() {
		mockUsers.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
			Expect(email).To(Equal("ada@example.com"))
			return &model.User{ID: 7, Email: email}, nil
		}

		user, err := svc.GetByEmail(ctx, "  Ada@Example.COM ")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(int64(7)))
	})

	It("maps store.ErrNotFound to ErrUserNotFound", func() {
		_, err := svc.Get(ctx, 1)
		Expect(err).To(MatchError(service.ErrUserNotFound))
	})

	It("wraps unexpected store errors", func() {
		mockUsers.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
			return nil, errors.New("connection reset")
		}

		_, err := svc.Get(ctx, 1)
		Expect(err).To(MatchError(ContainSubstring("getting user")))
		Expect(errors.Is(err, service.ErrUserNotFound)).To(BeFalse())
	})

	Describe("SetPlatformAdmin", func() {
		It("requires an existing user", func() {
			_, err := svc.SetPlatformAdmin(ctx, "ghost@example.com", true)
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("updates the flag for the resolved user", func() {
			mockUsers.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
				return &model.User{ID: 3, Email: email}, nil
			}
			var gotID int64
			mockUsers.setPlatformAdminFn = func(_ context.Context, id int64, admin bool) (*model.User, error) {
				gotID = id
				return &model.User{ID: id, IsPlatformAdmin: admin}, nil
			}

			user, err := svc.SetPlatformAdmin(ctx, "ops@example.com", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotID).To(Equal(int64(3)))
			Expect(user.IsPlatformAdmin).To(BeTrue())
		})

		It("surfaces update failures", func() {
			mockUsers.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
				return &model.User{ID: 3, Email: email}, nil
			}
			mockUsers.setPlatformAdminFn = func(_ context.Context, _ int64, _ bool) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.SetPlatformAdmin(ctx, "ops@example.com", false)
			Expect(err).To(MatchError(ContainSubstring("updating user")))
		})
	})
})
