package service_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var _ = Describe("AutomationService", func() {
	var (
		svc         service.AutomationService
		automations *mockAutomationStore
		contacts    *mockContactStore
		campaigns   *mockCampaignStore
		enrollments *mockEnrollmentStore
		memberships *mockMembershipStore
		contact     *model.Contact
		ctx         context.Context
	)

	automation := func(id int64, conditions string, actions ...model.Action) model.Automation {
		return model.Automation{
			ID:             id,
			OrganizationID: 1,
			Name:           "rule",
			Trigger:        model.TriggerContactCreated,
			Conditions:     json.RawMessage(conditions),
			Actions:        actions,
			Enabled:        true,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		contact = &model.Contact{
			ID:             100,
			OrganizationID: 1,
			FirstName:      "Ada",
			Phone:          strPtr("+14155550100"),
			Status:         model.ContactStatusLead,
			Tags:           []string{"imported"},
		}
		automations = &mockAutomationStore{}
		contacts = &mockContactStore{
			getByIDFn: func(_ context.Context, orgID, id int64) (*model.Contact, error) {
				if id != contact.ID {
					return nil, store.ErrNotFound
				}
				return contact, nil
			},
			updateFn: func(context.Context, *model.Contact) error {
				Fail("automation actions must not go through contact updates")
				return nil
			},
		}
		campaigns = &mockCampaignStore{byID: map[int64]*model.Campaign{
			10: {ID: 10, OrganizationID: 1, Status: model.CampaignStatusRunning},
		}}
		enrollments = &mockEnrollmentStore{}
		memberships = &mockMembershipStore{}
		svc = service.NewAutomationService(
			automations,
			contacts,
			&mockDealStore{},
			&mockCallRecordStore{},
			nil,
			campaigns,
			enrollments,
			memberships,
		)
	})

	Describe("Run", func() {
		It("applies the actions of matching automations and records their runs", func() {
			var tags []string
			contacts.setTagsFn = func(_ context.Context, orgID, id int64, t []string) (*model.Contact, error) {
				tags = t
				return &model.Contact{ID: id, OrganizationID: orgID, Tags: t}, nil
			}
			automations.automations = []model.Automation{
				automation(1, `{"field":"status","operator":"equals","value":"lead"}`,
					model.Action{Type: model.ActionAddTag, Value: "Hot"}),
				automation(2, `{"field":"status","operator":"equals","value":"customer"}`,
					model.Action{Type: model.ActionAddTag, Value: "vip"}),
			}

			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 100)).To(Succeed())
			Expect(tags).To(Equal([]string{"imported", "hot"}))
			Expect(automations.runs).To(ConsistOf(int64(1)))
		})

		It("keeps running later automations when one action fails", func() {
			var status model.ContactStatus
			contacts.setStatusFn = func(_ context.Context, orgID, id int64, s model.ContactStatus) (*model.Contact, error) {
				status = s
				return &model.Contact{ID: id, OrganizationID: orgID, Status: s}, nil
			}
			automations.automations = []model.Automation{
				automation(1, `null`, model.Action{Type: model.ActionAssignOwner, Value: "not-a-user"}),
				automation(2, `null`, model.Action{Type: model.ActionSetContactStatus, Value: "active"}),
			}

			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 100)).To(Succeed())
			Expect(status).To(Equal(model.ContactStatusActive))
			Expect(automations.runs).To(ConsistOf(int64(2)))
		})

		It("carries the updated contact into later automations", func() {
			var calls [][]string
			contacts.setTagsFn = func(_ context.Context, orgID, id int64, t []string) (*model.Contact, error) {
				calls = append(calls, t)
				return &model.Contact{ID: id, OrganizationID: orgID, Tags: t}, nil
			}
			automations.automations = []model.Automation{
				automation(1, `null`, model.Action{Type: model.ActionAddTag, Value: "a"}),
				automation(2, `null`, model.Action{Type: model.ActionAddTag, Value: "b"}),
			}

			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 100)).To(Succeed())
			Expect(calls).To(Equal([][]string{{"imported", "a"}, {"imported", "a", "b"}}))
		})

		It("enrolls callable contacts and skips do-not-call ones", func() {
			automations.automations = []model.Automation{
				automation(1, `null`, model.Action{Type: model.ActionEnrollInCampaign, Value: "10"}),
			}

			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 100)).To(Succeed())
			Expect(enrollments.enrolled).To(HaveKey(int64(100)))

			enrollments.enrolled = nil
			contact.DoNotCall = true
			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 100)).To(Succeed())
			Expect(enrollments.enrolled).To(BeEmpty())
		})

		It("does nothing when the subject is gone", func() {
			automations.automations = []model.Automation{
				automation(1, `null`, model.Action{Type: model.ActionAddTag, Value: "a"}),
			}

			Expect(svc.Run(ctx, 1, model.TriggerContactCreated, 404)).To(Succeed())
			Expect(automations.runs).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		input := func(actions ...model.Action) service.AutomationInput {
			return service.AutomationInput{
				Name:    "Route leads",
				Trigger: model.TriggerContactCreated,
				Actions: actions,
			}
		}

		It("trims action values before storing them", func() {
			memberships.getFn = func(_ context.Context, orgID, userID int64) (*model.Membership, error) {
				return &model.Membership{OrganizationID: orgID, UserID: userID}, nil
			}

			a, err := svc.Create(ctx, 1, input(model.Action{Type: model.ActionAssignOwner, Value: " 7 "}))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Actions[0].Value).To(Equal("7"))
			Expect(a.Enabled).To(BeTrue())
			Expect(automations.created).To(HaveLen(1))
		})

		DescribeTable("rejects actions that could never run",
			func(action model.Action) {
				_, err := svc.Create(ctx, 1, input(action))
				Expect(err).To(MatchError(service.ErrInvalidAutomation))
				Expect(automations.created).To(BeEmpty())
			},
			Entry("non-numeric owner", model.Action{Type: model.ActionAssignOwner, Value: "abc"}),
			Entry("owner outside the organization", model.Action{Type: model.ActionAssignOwner, Value: "5"}),
			Entry("unknown contact status", model.Action{Type: model.ActionSetContactStatus, Value: "vip"}),
			Entry("non-numeric campaign", model.Action{Type: model.ActionEnrollInCampaign, Value: "spring"}),
			Entry("missing campaign", model.Action{Type: model.ActionEnrollInCampaign, Value: "99"}),
			Entry("blank tag", model.Action{Type: model.ActionAddTag, Value: "  "}),
			Entry("unknown action", model.Action{Type: "send_sms", Value: "hi"}),
		)

		It("requires at least one action", func() {
			_, err := svc.Create(ctx, 1, input())
			Expect(err).To(MatchError(service.ErrInvalidAutomation))
		})
	})
})
