package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/common/logger"
)

var _ = Describe("LogFields", func() {
	It("returns empty fields for a bare context", func() {
		Expect(logger.GetLogFields(context.Background())).To(Equal(logger.LogFields{}))
	})

	It("merges newer values over existing ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			OrganizationID: logger.Ptr(int64(1)),
			Component:      "switchyard.http",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			CampaignID: logger.Ptr(int64(9)),
			Component:  "switchyard.worker",
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.OrganizationID).To(Equal(int64(1)))
		Expect(*fields.CampaignID).To(Equal(int64(9)))
		Expect(fields.Component).To(Equal("switchyard.worker"))
	})

	It("keeps existing values when the new ones are unset", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{UserID: logger.Ptr(int64(5))})
		ctx = logger.WithLogFields(ctx, logger.LogFields{})
		Expect(*logger.GetLogFields(ctx).UserID).To(Equal(int64(5)))
	})
})

var _ = Describe("TraceHandler", func() {
	It("adds context fields to every record", func() {
		var buf bytes.Buffer
		log := slog.New(logger.NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			OrganizationID: logger.Ptr(int64(42)),
			TaskType:       logger.Ptr("automation"),
			Component:      "switchyard.test",
		})
		log.InfoContext(ctx, "hello", "extra", "x")

		var rec map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &rec)).To(Succeed())
		Expect(rec["organization_id"]).To(BeNumerically("==", 42))
		Expect(rec["task_type"]).To(Equal("automation"))
		Expect(rec["component"]).To(Equal("switchyard.test"))
		Expect(rec["extra"]).To(Equal("x"))
		Expect(rec).NotTo(HaveKey("trace_id"))
	})
})

var _ = Describe("Truncate", func() {
	It("leaves short strings alone", func() {
		Expect(logger.Truncate("abc", 5)).To(Equal("abc"))
	})

	It("cuts long strings", func() {
		Expect(logger.Truncate("abcdefgh", 3)).To(Equal("abc..."))
	})
})
