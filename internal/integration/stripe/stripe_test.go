package stripe_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stripe/stripe-go/v82/webhook"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/integration/stripe"
	"switchyard.app/platform/internal/model"
)

var _ = Describe("Client", func() {
	const secret = "whsec_test"
	payload := []byte(`{"id":"evt_1","object":"event","type":"invoice.paid","api_version":"2020-01-01","data":{"object":{"id":"in_1"}}}`)

	It("verifies signed payloads regardless of api version", func() {
		c := stripe.New(config.StripeConfig{WebhookSecret: secret})
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload: payload, Secret: secret, Timestamp: time.Now(),
		})

		id, typ, err := c.Verify(payload, signed.Header)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("evt_1"))
		Expect(typ).To(Equal(stripe.EventInvoicePaid))
	})

	It("rejects bad signatures", func() {
		c := stripe.New(config.StripeConfig{WebhookSecret: secret})
		_, _, err := c.Verify(payload, "t=1,v1=deadbeef")
		Expect(errors.Is(err, stripe.ErrInvalidSignature)).To(BeTrue())
	})

	It("refuses checkout when not configured", func() {
		_, err := stripe.New(config.StripeConfig{}).CreateCheckout(context.Background(), stripe.CheckoutRequest{})
		Expect(err).To(MatchError(stripe.ErrNotConfigured))
	})
})

var _ = Describe("ParseEvent", func() {
	It("decodes checkout completion", func() {
		ev, err := stripe.ParseEvent([]byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{
			"client_reference_id":"42","customer":"cus_1","subscription":"sub_1",
			"metadata":{"plan_code":"growth","seats":"7"}}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.OrganizationID).To(Equal(int64(42)))
		Expect(ev.SubscriptionID).To(Equal("sub_1"))
		Expect(ev.CustomerID).To(Equal("cus_1"))
		Expect(ev.PlanCode).To(Equal("growth"))
		Expect(ev.Seats).To(Equal(int32(7)))
	})

	It("decodes subscription periods from items", func() {
		ev, err := stripe.ParseEvent([]byte(`{"id":"evt_2","type":"customer.subscription.updated","data":{"object":{
			"id":"sub_1","status":"past_due","cancel_at_period_end":true,
			"items":{"data":[{"current_period_start":1760000000,"current_period_end":1762600000}]}}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Status).To(Equal("past_due"))
		Expect(ev.CancelAtPeriodEnd).To(BeTrue())
		Expect(ev.PeriodEnd).NotTo(BeNil())
		Expect(ev.PeriodEnd.Unix()).To(Equal(int64(1762600000)))
	})

	It("finds the invoice subscription under parent", func() {
		ev, err := stripe.ParseEvent([]byte(`{"id":"evt_3","type":"invoice.payment_failed","data":{"object":{
			"id":"in_1","parent":{"subscription_details":{"subscription":"sub_9","metadata":{"organization_id":"5"}}}}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.SubscriptionID).To(Equal("sub_9"))
		Expect(ev.OrganizationID).To(Equal(int64(5)))
	})

	It("rejects malformed events", func() {
		_, err := stripe.ParseEvent([]byte(`{"type":"x"}`))
		Expect(err).To(HaveOccurred())
		_, err = stripe.ParseEvent([]byte(`nope`))
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("maps subscription statuses",
		func(in string, want model.SubscriptionStatus, ok bool) {
			got, found := stripe.SubscriptionStatus(in)
			Expect(found).To(Equal(ok))
			Expect(got).To(Equal(want))
		},
		Entry("active", "active", model.SubscriptionStatusActive, true),
		Entry("unpaid", "unpaid", model.SubscriptionStatusPastDue, true),
		Entry("incomplete_expired", "incomplete_expired", model.SubscriptionStatusCanceled, true),
		Entry("paused", "paused", model.SubscriptionStatus(""), false),
	)
})
