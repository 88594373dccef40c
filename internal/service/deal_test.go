package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("DealService", func() {
	var (
		svc      service.DealService
		deals    *mockDealStore
		contacts *mockContactStore
		triggers *mockTriggers
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		deals = &mockDealStore{}
		contacts = &mockContactStore{}
		triggers = &mockTriggers{}
		svc = service.NewDealService(deals, contacts, triggers)
	})

	dealAt := func(stage model.DealStage) {
		deals.getByIDFn = func(_ context.Context, orgID, id int64) (*model.Deal, error) {
			return &model.Deal{ID: id, OrganizationID: orgID, Stage: stage, AmountCents: 1000}, nil
		}
	}

	Describe("Create", func() {
		It("defaults the stage and currency", func() {
			d, err := svc.Create(ctx, 1, service.DealInput{Title: " Renewal ", AmountCents: 5000, Currency: "eur"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Title).To(Equal("Renewal"))
			Expect(d.Stage).To(Equal(model.DealStageLead))
			Expect(d.Currency).To(Equal("EUR"))
		})

		It("rejects a contact from another organization", func() {
			_, err := svc.Create(ctx, 1, service.DealInput{Title: "Renewal", ContactID: int64Ptr(3)})
			Expect(err).To(MatchError(service.ErrDealContactMismatch))
		})

		It("rejects a negative amount", func() {
			_, err := svc.Create(ctx, 1, service.DealInput{Title: "Renewal", AmountCents: -1})
			Expect(err).To(MatchError(service.ErrInvalidDeal))
		})
	})

	Describe("MoveStage", func() {
		It("stamps ClosedAt when a deal is won and emits deal_stage_changed", func() {
			dealAt(model.DealStageNegotiation)

			d, err := svc.MoveStage(ctx, 1, 7, model.DealStageWon)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Stage).To(Equal(model.DealStageWon))
			Expect(d.ClosedAt).NotTo(BeNil())
			Expect(*d.ClosedAt).To(BeTemporally("~", time.Now(), time.Second))
			Expect(triggers.events).To(ConsistOf(emitted{orgID: 1, trigger: model.TriggerDealStageChanged, subjectID: 7}))
		})

		It("clears ClosedAt when a closed deal is reopened", func() {
			dealAt(model.DealStageLost)
			var gotClosedAt *time.Time
			deals.updateStageFn = func(_ context.Context, _, id int64, stage model.DealStage, closedAt *time.Time) (*model.Deal, error) {
				gotClosedAt = closedAt
				return &model.Deal{ID: id, Stage: stage}, nil
			}

			_, err := svc.MoveStage(ctx, 1, 7, model.DealStageQualified)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotClosedAt).To(BeNil())
		})

		DescribeTable("rejects disallowed transitions",
			func(from, to model.DealStage, want error) {
				dealAt(from)
				_, err := svc.MoveStage(ctx, 1, 7, to)
				Expect(err).To(MatchError(want))
				Expect(triggers.events).To(BeEmpty())
			},
			Entry("reopen past qualified", model.DealStageWon, model.DealStageProposal, service.ErrStageTransition),
			Entry("same stage", model.DealStageLead, model.DealStageLead, service.ErrStageTransition),
			Entry("unknown stage", model.DealStageLead, model.DealStage("shipped"), service.ErrInvalidStage),
		)

		It("returns ErrDealNotFound for missing deals", func() {
			_, err := svc.MoveStage(ctx, 1, 7, model.DealStageWon)
			Expect(err).To(MatchError(service.ErrDealNotFound))
		})
	})

	Describe("PipelineSummary", func() {
		It("includes empty stages and weights open amounts by probability", func() {
			deals.stageTotalsFn = func(_ context.Context, _ int64) ([]model.PipelineStageSummary, error) {
				return []model.PipelineStageSummary{
					{Stage: model.DealStageLead, Count: 2, AmountCents: 10000},
					{Stage: model.DealStageNegotiation, Count: 1, AmountCents: 4000},
					{Stage: model.DealStageWon, Count: 3, AmountCents: 90000},
					{Stage: model.DealStageLost, Count: 1, AmountCents: 7000},
				}, nil
			}

			summary, err := svc.PipelineSummary(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Stages).To(HaveLen(len(model.DealStages)))
			for i, row := range summary.Stages {
				Expect(row.Stage).To(Equal(model.DealStages[i]))
			}

			Expect(summary.Stages[0].WeightedCents).To(Equal(int64(1000)))
			Expect(summary.Stages[1].Count).To(BeZero())
			Expect(summary.Stages[3].WeightedCents).To(Equal(int64(3000)))
			Expect(summary.OpenCents).To(Equal(int64(14000)))
			Expect(summary.ForecastCents).To(Equal(int64(4000)))
			Expect(summary.WonCents).To(Equal(int64(90000)))
		})
	})
})
