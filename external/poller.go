package external

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/types"
)

const (
	DefaultMetalInterval    = 60 * time.Second
	DefaultContractInterval = 30 * time.Second
)

type PollerConfig struct {
	Feed     Feed
	Interval time.Duration
	// OnUpdate, when set, receives every applied snapshot.
	OnUpdate func(ctx context.Context, prices *types.MetalPrices)

	Metrics *metrics.Provider
	Logger  *zap.Logger
}

// Poller keeps the latest snapshot of a feed. Fetches may overlap; a result is applied
// only when it was requested after the one currently held.
type Poller struct {
	feed     Feed
	interval time.Duration
	onUpdate func(ctx context.Context, prices *types.MetalPrices)

	mu      sync.RWMutex
	seq     uint64
	applied uint64
	latest  *types.MetalPrices

	metrics *metrics.Provider
	logger  *zap.Logger
}

func NewPoller(cfg PollerConfig) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultMetalInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		feed:     cfg.Feed,
		interval: interval,
		onUpdate: cfg.OnUpdate,
		metrics:  cfg.Metrics,
		logger:   logger.With(zap.String("poller", cfg.Feed.Name())),
	}
}

// Latest returns the applied snapshot, nil before the first poll resolves.
func (p *Poller) Latest() *types.MetalPrices {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

func (p *Poller) next() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

// apply stores prices fetched under seq unless a newer request already resolved.
func (p *Poller) apply(seq uint64, prices *types.MetalPrices) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		return false
	}
	p.applied = seq
	p.latest = prices
	return true
}

// Poll fetches once and reports whether the result was applied.
func (p *Poller) Poll(ctx context.Context) bool {
	seq := p.next()
	prices := p.feed.Fetch(ctx)
	if !p.apply(seq, prices) {
		p.metrics.RecordPricePoll(p.feed.Name(), "stale")
		p.logger.Debug("drop stale price result", zap.Uint64("seq", seq))
		return false
	}
	outcome := "ok"
	if prices.Source == SourceFallback {
		outcome = SourceFallback
	}
	p.metrics.RecordPricePoll(p.feed.Name(), outcome)
	if p.onUpdate != nil {
		p.onUpdate(ctx, prices)
	}
	return true
}

// Run polls immediately and then on every tick until ctx is done. Each tick runs in
// its own goroutine so a slow upstream never delays the schedule.
func (p *Poller) Run(ctx context.Context) {
	lgr := p.logger.With(zap.Duration("interval", p.interval))
	lgr.Info("Start polling prices")
	var wg sync.WaitGroup
	defer wg.Wait()

	poll := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Poll(ctx)
		}()
	}
	poll()
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			lgr.Info("Stop polling prices")
			return
		case <-t.C:
			poll()
		}
	}
}
