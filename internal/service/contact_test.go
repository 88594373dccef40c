package service_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type fakeIndex struct {
	upserted  []int64
	deleted   []int64
	searchIDs []int64
	searchErr error
}

func (f *fakeIndex) EnsureCollection(context.Context) error { return nil }

func (f *fakeIndex) Upsert(_ context.Context, c *model.Contact) error {
	f.upserted = append(f.upserted, c.ID)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, _, contactID int64) error {
	f.deleted = append(f.deleted, contactID)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ int64, _ string, _, _ int) ([]int64, int, error) {
	return f.searchIDs, len(f.searchIDs), f.searchErr
}

type fixedLimits int64

func (l fixedLimits) MaxContacts(context.Context, int64) (int64, error) { return int64(l), nil }

var _ = Describe("ContactService", func() {
	var (
		svc      service.ContactService
		contacts *mockContactStore
		index    *fakeIndex
		triggers *mockTriggers
		tx       *mockTxRunner
		ctx      context.Context
	)

	build := func(limits service.PlanLimits) {
		svc = service.NewContactService(contacts, tx, index, triggers, limits)
	}

	BeforeEach(func() {
		ctx = context.Background()
		contacts = &mockContactStore{}
		index = &fakeIndex{}
		triggers = &mockTriggers{}
		tx = &mockTxRunner{provider: &mockStoreProvider{contacts: contacts}}
		build(nil)
	})

	Describe("Create", func() {
		It("normalizes identity fields and defaults status and source", func() {
			c, err := svc.Create(ctx, 1, service.ContactInput{
				FirstName: "  Ada ",
				Email:     strPtr(" Ada@Example.com "),
				Phone:     strPtr("(415) 555-0100"),
				Tags:      []string{"VIP", " vip ", "west"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.FirstName).To(Equal("Ada"))
			Expect(*c.Email).To(Equal("ada@example.com"))
			Expect(*c.Phone).To(Equal("+14155550100"))
			Expect(c.Tags).To(Equal([]string{"vip", "west"}))
			Expect(c.Status).To(Equal(model.ContactStatusLead))
			Expect(c.Source).To(Equal("manual"))
			Expect(c.CustomFields).NotTo(BeNil())
		})

		It("indexes the contact and emits contact_created", func() {
			c, err := svc.Create(ctx, 1, service.ContactInput{Email: strPtr("a@example.com")})
			Expect(err).NotTo(HaveOccurred())
			Expect(index.upserted).To(ConsistOf(c.ID))
			Expect(triggers.events).To(ConsistOf(emitted{orgID: 1, trigger: model.TriggerContactCreated, subjectID: c.ID}))
		})

		DescribeTable("rejects invalid input",
			func(in service.ContactInput, want error) {
				_, err := svc.Create(ctx, 1, in)
				Expect(err).To(MatchError(want))
				Expect(contacts.created).To(BeEmpty())
			},
			Entry("no email or phone", service.ContactInput{FirstName: "Ada"}, service.ErrContactIdentity),
			Entry("blank email only", service.ContactInput{Email: strPtr("  ")}, service.ErrContactIdentity),
			Entry("bad email", service.ContactInput{Email: strPtr("nope")}, service.ErrInvalidEmail),
			Entry("bad phone", service.ContactInput{Phone: strPtr("12345")}, service.ErrInvalidPhone),
			Entry("bad status", service.ContactInput{Email: strPtr("a@example.com"), Status: "vip"}, service.ErrInvalidStatus),
			Entry("bad timezone", service.ContactInput{Email: strPtr("a@example.com"), Timezone: strPtr("Mars/Olympus")}, service.ErrInvalidTimezone),
		)

		It("enforces the plan contact limit", func() {
			build(fixedLimits(10))
			contacts.countFn = func(_ context.Context, _ int64, _ model.ContactFilter) (int64, error) { return 10, nil }

			_, err := svc.Create(ctx, 1, service.ContactInput{Email: strPtr("a@example.com")})
			Expect(err).To(MatchError(service.ErrContactLimitReached))
		})

		It("treats a zero limit as unlimited", func() {
			build(fixedLimits(0))
			_, err := svc.Create(ctx, 1, service.ContactInput{Email: strPtr("a@example.com")})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			contacts.getByIDFn = func(_ context.Context, orgID, id int64) (*model.Contact, error) {
				return &model.Contact{
					ID:             id,
					OrganizationID: orgID,
					FirstName:      "Ada",
					Email:          strPtr("ada@example.com"),
					Status:         model.ContactStatusLead,
				}, nil
			}
		})

		It("applies only the patched fields", func() {
			status := model.ContactStatusCustomer
			c, err := svc.Update(ctx, 1, 5, service.ContactPatch{LastName: strPtr(" Lovelace "), Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.FirstName).To(Equal("Ada"))
			Expect(c.LastName).To(Equal("Lovelace"))
			Expect(c.Status).To(Equal(model.ContactStatusCustomer))
			Expect(triggers.events).To(ConsistOf(emitted{orgID: 1, trigger: model.TriggerContactUpdated, subjectID: 5}))
		})

		It("refuses to clear the only identity", func() {
			_, err := svc.Update(ctx, 1, 5, service.ContactPatch{Email: strPtr("")})
			Expect(err).To(MatchError(service.ErrContactIdentity))
		})

		It("returns ErrContactNotFound for other organizations' contacts", func() {
			contacts.getByIDFn = nil
			_, err := svc.Update(ctx, 2, 5, service.ContactPatch{FirstName: strPtr("x")})
			Expect(err).To(MatchError(service.ErrContactNotFound))
		})
	})

	Describe("tags", func() {
		BeforeEach(func() {
			contacts.getByIDFn = func(_ context.Context, orgID, id int64) (*model.Contact, error) {
				return &model.Contact{ID: id, OrganizationID: orgID, Tags: []string{"vip", "west"}}, nil
			}
		})

		It("adds tags without duplicates", func() {
			c, err := svc.AddTags(ctx, 1, 5, []string{"West", "hot"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Tags).To(Equal([]string{"vip", "west", "hot"}))
		})

		It("removes tags case-insensitively", func() {
			c, err := svc.RemoveTags(ctx, 1, 5, []string{"VIP"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Tags).To(Equal([]string{"west"}))
		})
	})

	Describe("Search", func() {
		people := []model.Contact{
			{ID: 1, FirstName: "Grace", LastName: "Hopper", Email: strPtr("grace@navy.mil")},
			{ID: 2, FirstName: "Ada", LastName: "Lovelace", Email: strPtr("ada@example.com")},
		}

		It("returns index hits in index order", func() {
			index.searchIDs = []int64{2, 1}
			contacts.listByIDsFn = func(_ context.Context, _ int64, ids []int64) ([]model.Contact, error) {
				Expect(ids).To(Equal([]int64{2, 1}))
				return people, nil
			}

			page, err := svc.Search(ctx, 1, "a", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].ID).To(Equal(int64(2)))
			Expect(page.Total).To(Equal(2))
		})

		It("falls back to the database when the index fails", func() {
			index.searchErr = errors.New("typesense unavailable")
			contacts.listFn = func(_ context.Context, _ int64, filter model.ContactFilter) ([]model.Contact, error) {
				Expect(*filter.Query).To(Equal("ada"))
				return people, nil
			}

			page, err := svc.Search(ctx, 1, " ada ", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).NotTo(BeEmpty())
			Expect(page.Items[0].ID).To(Equal(int64(2)))
		})
	})

	Describe("CommitImport", func() {
		const csv = "Name,Email,Phone\n" +
			"Ada Lovelace,ada@example.com,4155550100\n" +
			"Grace Hopper,grace@example.com,\n" +
			"Broken Row,not-an-email,\n"

		It("creates new rows, skips existing emails and counts invalid rows", func() {
			contacts.existingEmailsFn = func(_ context.Context, _ int64, emails []string) ([]string, error) {
				Expect(emails).To(ContainElements("ada@example.com", "grace@example.com"))
				return []string{"GRACE@example.com"}, nil
			}

			res, err := svc.CommitImport(ctx, 1, "people.csv", strings.NewReader(csv), nil, int64Ptr(9))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Created).To(Equal(1))
			Expect(res.Skipped).To(Equal(1))
			Expect(res.Invalid).To(Equal(1))

			Expect(tx.calls).To(Equal(1))
			Expect(contacts.created).To(HaveLen(1))
			created := contacts.created[0]
			Expect(created.FirstName).To(Equal("Ada"))
			Expect(created.Source).To(Equal("import"))
			Expect(*created.OwnerUserID).To(Equal(int64(9)))
			Expect(triggers.events).To(HaveLen(1))
		})

		It("refuses an import that would exceed the plan", func() {
			build(fixedLimits(1))
			contacts.countFn = func(_ context.Context, _ int64, _ model.ContactFilter) (int64, error) { return 1, nil }

			_, err := svc.CommitImport(ctx, 1, "people.csv", strings.NewReader(csv), nil, nil)
			Expect(err).To(MatchError(service.ErrContactLimitReached))
			Expect(tx.calls).To(BeZero())
		})
	})

	It("removes deleted contacts from the index", func() {
		Expect(svc.Delete(ctx, 1, 7)).To(Succeed())
		Expect(index.deleted).To(ConsistOf(int64(7)))
	})
})
