package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"startupconnect/pkg/contextx"
	"startupconnect/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultPollInterval = 5 * time.Second

// Poller runs one fetch closure on a fixed interval until stopped. The fetch
// executes synchronously in the poll loop, so a slow fetch simply drops the
// ticks that fire while it runs; overlapping fetches for the same resource
// cannot happen.
type Poller struct {
	key      string
	interval time.Duration
	fetch    func(ctx context.Context) error

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewPoller(key string, fetch func(ctx context.Context) error) *Poller {
	return &Poller{
		key:      key,
		interval: defaultPollInterval,
		fetch:    fetch,
	}
}

func (p *Poller) WithInterval(interval time.Duration) *Poller {
	if interval > 0 {
		p.interval = interval
	}
	return p
}

func (p *Poller) Key() string {
	return p.key
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return errors.New("poller is already running")
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancelFunc = cancel
	p.isRunning = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isRunning = false
			p.cancelFunc = nil
			p.mu.Unlock()
		}()

		p.run(pollCtx)
	}()

	return nil
}

// Stop cancels the poll loop and waits for an in-flight fetch to return.
func (p *Poller) Stop() {
	p.mu.Lock()

	if !p.isRunning {
		p.mu.Unlock()
		return
	}

	if p.cancelFunc != nil {
		p.cancelFunc()
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isRunning
}

func (p *Poller) run(ctx context.Context) {
	logger(ctx).Info("poller started",
		logx.PollKey(p.key),
		slog.Duration("interval", p.interval),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First fetch fires immediately so the caller never waits a full
	// interval for initial data.
	p.fetchOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("poller stopped", logx.PollKey(p.key))
			return
		case <-ticker.C:
			p.fetchOnce(ctx)
		}
	}
}

func (p *Poller) fetchOnce(ctx context.Context) {
	err := p.fetch(ctx)
	if err == nil {
		pollCyclesTotal.WithLabelValues(p.key, "ok").Inc()
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	pollCyclesTotal.WithLabelValues(p.key, "error").Inc()

	// Poll errors are transient by assumption; the next tick retries.
	logger(ctx).Warn("poll fetch failed",
		logx.PollKey(p.key),
		logx.Error(err),
	)
}
