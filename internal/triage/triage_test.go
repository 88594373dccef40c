package triage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/triage"
)

func decision(d model.SenderDecisionKind) *model.SenderDecisionKind { return &d }

var _ = Describe("Classify", func() {
	DescribeTable("routes messages",
		func(in triage.Input, view model.EmailView) {
			v := triage.Classify(in)
			Expect(v.Drop).To(BeFalse())
			Expect(v.View).To(Equal(view))
		},
		Entry("decision beats bulk signals",
			triage.Input{FromEmail: "noreply@shop.com", ListUnsubscribe: true, Decision: decision(model.SenderDecisionImbox)},
			model.EmailViewImbox),
		Entry("paper trail decision",
			triage.Input{FromEmail: "ada@example.com", IsContact: true, Decision: decision(model.SenderDecisionPaperTrail)},
			model.EmailViewPaperTrail),
		Entry("unknown sender is screened",
			triage.Input{FromEmail: "stranger@example.com", Subject: "Hello"},
			model.EmailViewScreener),
		Entry("unknown bulk sender is still screened",
			triage.Input{FromEmail: "newsletter@example.com", ListUnsubscribe: true},
			model.EmailViewScreener),
		Entry("list unsubscribe goes to feed",
			triage.Input{FromEmail: "ada@example.com", IsContact: true, ListUnsubscribe: true},
			model.EmailViewFeed),
		Entry("noreply sender goes to feed",
			triage.Input{FromEmail: "No-Reply+tx@example.com", IsContact: true},
			model.EmailViewFeed),
		Entry("receipts go to the paper trail",
			triage.Input{FromEmail: "billing@example.com", IsContact: true, Subject: "Your receipt from Acme"},
			model.EmailViewPaperTrail),
		Entry("order shipped",
			triage.Input{FromEmail: "ops@example.com", IsContact: true, Subject: "Order #123 has SHIPPED"},
			model.EmailViewPaperTrail),
		Entry("known contact lands in the imbox",
			triage.Input{FromEmail: "ada@example.com", IsContact: true, Subject: "Lunch?"},
			model.EmailViewImbox),
		Entry("subject words inside other words do not count",
			triage.Input{FromEmail: "ada@example.com", IsContact: true, Subject: "Disorderly thoughts"},
			model.EmailViewImbox),
	)

	It("drops mail from blocked senders", func() {
		v := triage.Classify(triage.Input{FromEmail: "spam@example.com", IsContact: true, Decision: decision(model.SenderDecisionBlocked)})
		Expect(v.Drop).To(BeTrue())
	})
})

var _ = Describe("ViewForDecision", func() {
	It("maps filing decisions", func() {
		view, ok := triage.ViewForDecision(model.SenderDecisionFeed)
		Expect(ok).To(BeTrue())
		Expect(view).To(Equal(model.EmailViewFeed))
	})

	It("has no view for blocked", func() {
		_, ok := triage.ViewForDecision(model.SenderDecisionBlocked)
		Expect(ok).To(BeFalse())
	})
})
