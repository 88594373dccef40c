package worker

import (
	"context"
	"log/slog"
	"sync"

	"switchyard.app/platform/common/logger"
)

type PrefetcherConfig struct {
	Workers   int
	QueueSize int
}

// Prefetcher loads email bodies in the background. Ids are deduped while
// queued or in flight, and Enqueue drops ids when the queue is full.
type Prefetcher struct {
	fetcher BodyFetcher
	cfg     PrefetcherConfig
	queue   chan int64

	mu      sync.Mutex
	pending map[int64]struct{}

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func NewPrefetcher(fetcher BodyFetcher, cfg PrefetcherConfig) *Prefetcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	return &Prefetcher{
		fetcher: fetcher,
		cfg:     cfg,
		queue:   make(chan int64, cfg.QueueSize),
		pending: make(map[int64]struct{}),
		stopCh:  make(chan struct{}),
	}
}

// Enqueue reports whether the id was accepted.
func (p *Prefetcher) Enqueue(messageID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.pending[messageID]; ok {
		return false
	}

	select {
	case p.queue <- messageID:
		p.pending[messageID] = struct{}{}
		return true
	default:
		return false
	}
}

// Pending returns the number of ids queued or in flight.
func (p *Prefetcher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Prefetcher) Start(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "switchyard.worker.prefetcher"})
	for range p.cfg.Workers {
		p.wg.Add(1)
		go p.run(ctx)
	}
	slog.InfoContext(ctx, "prefetcher started",
		"workers", p.cfg.Workers,
		"queue_size", p.cfg.QueueSize)
}

// Stop waits for in-flight fetches. Ids still queued are discarded.
func (p *Prefetcher) Stop() {
	p.once.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Prefetcher) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case id := <-p.queue:
			p.fetch(ctx, id)
		}
	}
}

func (p *Prefetcher) fetch(ctx context.Context, id int64) {
	defer func() {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
	}()

	if err := p.fetcher.FetchBody(ctx, id); err != nil {
		slog.WarnContext(ctx, "prefetch failed", "email_message_id", id, "error", err)
	}
}
