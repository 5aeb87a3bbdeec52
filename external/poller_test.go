package external

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/types"
)

// gatedFeed returns the queued results in order, each call blocking until released.
type gatedFeed struct {
	mu      sync.Mutex
	results []*types.MetalPrices
	release []chan struct{}
	calls   int
}

func newGatedFeed(sources ...string) *gatedFeed {
	f := &gatedFeed{}
	for _, s := range sources {
		f.results = append(f.results, &types.MetalPrices{Source: s})
		f.release = append(f.release, make(chan struct{}))
	}
	return f
}

func (f *gatedFeed) Name() string { return "test" }

func (f *gatedFeed) Fetch(ctx context.Context) *types.MetalPrices {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()
	<-f.release[i]
	return f.results[i]
}

func TestPoller_LastResolvedWins(t *testing.T) {
	feed := newGatedFeed("first", "second")
	m := metrics.New()
	p := NewPoller(PollerConfig{Feed: feed, Metrics: m})
	ctx := context.Background()

	firstDone := make(chan bool)
	go func() { firstDone <- p.Poll(ctx) }()
	require.Eventually(t, func() bool {
		feed.mu.Lock()
		defer feed.mu.Unlock()
		return feed.calls == 1
	}, time.Second, time.Millisecond)

	secondDone := make(chan bool)
	go func() { secondDone <- p.Poll(ctx) }()
	require.Eventually(t, func() bool {
		feed.mu.Lock()
		defer feed.mu.Unlock()
		return feed.calls == 2
	}, time.Second, time.Millisecond)

	close(feed.release[1])
	assert.True(t, <-secondDone)
	assert.Equal(t, "second", p.Latest().Source)

	close(feed.release[0])
	assert.False(t, <-firstDone)
	assert.Equal(t, "second", p.Latest().Source)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PricePolls("test", "stale")))
}

func TestPoller_Apply(t *testing.T) {
	p := NewPoller(PollerConfig{Feed: newGatedFeed()})
	assert.Nil(t, p.Latest())
	assert.True(t, p.apply(2, &types.MetalPrices{Source: "b"}))
	assert.False(t, p.apply(1, &types.MetalPrices{Source: "a"}))
	assert.False(t, p.apply(2, &types.MetalPrices{Source: "c"}))
	assert.Equal(t, "b", p.Latest().Source)
}

func TestPoller_RunUpdates(t *testing.T) {
	updates := make(chan *types.MetalPrices, 8)
	feed := NewContractFeed(&fakeOracle{prices: &types.OraclePrices{GoldUSD: 1, SilverUSD: 2}}, nil)
	p := NewPoller(PollerConfig{
		Feed:     feed,
		Interval: 10 * time.Millisecond,
		OnUpdate: func(ctx context.Context, prices *types.MetalPrices) {
			select {
			case updates <- prices:
			default:
			}
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case got := <-updates:
			assert.Equal(t, SourceContractOracle, got.Source)
		case <-time.After(time.Second):
			t.Fatal("no price update")
		}
	}
	cancel()
	<-done
	require.NotNil(t, p.Latest())
}
