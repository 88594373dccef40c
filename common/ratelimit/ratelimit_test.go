package ratelimit_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/common/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ = Describe("Limiter", func() {
	var (
		clock *fakeClock
		l     *ratelimit.Limiter
	)

	BeforeEach(func() {
		clock = &fakeClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
		l = ratelimit.New(1, 2, time.Minute, ratelimit.WithClock(clock.Now))
		DeferCleanup(l.Stop)
	})

	It("allows the burst then denies with a retry delay", func() {
		ok, _ := l.Allow("org-1")
		Expect(ok).To(BeTrue())
		ok, _ = l.Allow("org-1")
		Expect(ok).To(BeTrue())

		ok, retry := l.Allow("org-1")
		Expect(ok).To(BeFalse())
		Expect(retry).To(Equal(time.Second))

		clock.Advance(time.Second)
		ok, _ = l.Allow("org-1")
		Expect(ok).To(BeTrue())
	})

	It("keeps keys independent", func() {
		l.Allow("a")
		l.Allow("a")
		ok, _ := l.Allow("b")
		Expect(ok).To(BeTrue())
		Expect(l.Len()).To(Equal(2))
	})

	It("evicts idle keys", func() {
		l.Allow("idle")
		clock.Advance(30 * time.Second)
		l.Allow("busy")
		clock.Advance(45 * time.Second)

		Expect(l.Sweep()).To(Equal(1))
		Expect(l.Len()).To(Equal(1))
	})

	It("stops idempotently", func() {
		l.Stop()
		l.Stop()
	})
})
