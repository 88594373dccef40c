package queue_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"switchyard.app/platform/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	It("parses a webhook event task", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"task_type":    "webhook_event",
			"event_log_id": "42",
			"attempt":      "2",
			"trace_id":     "abc",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1-0"))
		Expect(msg.TaskType).To(Equal(queue.TaskTypeWebhookEvent))
		Expect(*msg.EventLogID).To(Equal(int64(42)))
		Expect(msg.Attempt).To(Equal(2))
		Expect(*msg.TraceID).To(Equal("abc"))
	})

	It("defaults the attempt to 1", func() {
		msg, err := queue.ParseMessage(redis.XMessage{Values: map[string]any{
			"task_type": "call_summary", "call_id": "7",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
		Expect(*msg.CallID).To(Equal(int64(7)))
	})

	DescribeTable("rejects incomplete tasks",
		func(values map[string]any, want string) {
			_, err := queue.ParseMessage(redis.XMessage{Values: values})
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("no type", map[string]any{"event_log_id": "1"}, "missing task_type"),
		Entry("unknown type", map[string]any{"task_type": "repo_sync"}, "unknown task_type"),
		Entry("webhook without id", map[string]any{"task_type": "webhook_event"}, "event_log_id"),
		Entry("automation without trigger", map[string]any{"task_type": "automation", "organization_id": "1", "subject_id": "2"}, "trigger"),
		Entry("bad int", map[string]any{"task_type": "call_summary", "call_id": "x"}, "parsing call_id"),
	)
})

var _ = Describe("task constructors", func() {
	It("builds valid tasks", func() {
		t := queue.AutomationTask(1, "contact_created", 2)
		Expect(t.TaskType).To(Equal(queue.TaskTypeAutomation))
		Expect(*t.SubjectID).To(Equal(int64(2)))

		t = queue.WebhookEventTask(5, nil)
		Expect(*t.EventLogID).To(Equal(int64(5)))
		Expect(t.OrganizationID).To(BeNil())
	})
})
