package worker_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/worker"
)

func message(id string, attempt int) queue.Message {
	task := queue.WebhookEventTask(10, nil)
	task.Attempt = attempt
	return queue.Message{ID: id, Task: task}
}

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		consumer *mockConsumer
		handler  *mockHandler
		w        *worker.Worker
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		handler = &mockHandler{processFn: func(context.Context, queue.Task) error { return nil }}
		w = worker.New(consumer, handler, worker.Config{MaxAttempts: 3})
	})

	It("acks a processed message", func() {
		w.HandleMessage(ctx, message("1-0", 1))
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("requeues a failure below max attempts", func() {
		handler.processFn = func(context.Context, queue.Task) error { return errors.New("boom") }
		w.HandleMessage(ctx, message("1-0", 2))
		Expect(consumer.acked).To(BeEmpty())
		Expect(consumer.requeued).To(Equal([]string{"1-0"}))
	})

	It("dead-letters at max attempts", func() {
		handler.processFn = func(context.Context, queue.Task) error { return errors.New("boom") }
		w.HandleMessage(ctx, message("1-0", 3))
		Expect(consumer.dlq).To(Equal([]string{"1-0"}))
	})

	It("converts panics into retries", func() {
		handler.processFn = func(context.Context, queue.Task) error { panic("bad") }
		Expect(func() { w.HandleMessage(ctx, message("2-0", 1)) }).NotTo(Panic())
		Expect(consumer.requeued).To(Equal([]string{"2-0"}))
	})

	It("stops the run loop", func() {
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- w.Run(runCtx) }()
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})

var _ = Describe("Processor", func() {
	var (
		webhooks    *mockWebhooks
		automations *mockAutomations
		calls       *mockSummarizer
		p           *worker.Processor
	)

	BeforeEach(func() {
		webhooks = &mockWebhooks{}
		automations = &mockAutomations{}
		calls = &mockSummarizer{}
		p = worker.NewProcessor(webhooks, automations, calls)
	})

	It("routes webhook events", func() {
		Expect(p.Process(context.Background(), queue.WebhookEventTask(5, nil))).To(Succeed())
		Expect(webhooks.ids).To(Equal([]int64{5}))
	})

	It("routes automations", func() {
		task := queue.AutomationTask(1, string(model.TriggerContactCreated), 9)
		Expect(p.Process(context.Background(), task)).To(Succeed())
		Expect(automations.trigger).To(Equal(model.TriggerContactCreated))
		Expect(automations.subject).To(Equal(int64(9)))
	})

	It("routes call summaries", func() {
		Expect(p.Process(context.Background(), queue.CallSummaryTask(1, 77))).To(Succeed())
		Expect(calls.callID).To(Equal(int64(77)))
	})

	It("rejects unknown triggers", func() {
		task := queue.AutomationTask(1, "nope", 9)
		Expect(p.Process(context.Background(), task)).To(MatchError(ContainSubstring("unknown trigger")))
	})

	It("propagates handler errors", func() {
		webhooks.err = errors.New("db down")
		Expect(p.Process(context.Background(), queue.WebhookEventTask(5, nil))).To(MatchError("db down"))
	})
})
