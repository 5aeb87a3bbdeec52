// Package server
package server

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/cache"
	"github.com/mayur-samrutwar/orion/cfg"
	"github.com/mayur-samrutwar/orion/external"
	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/orion"
	"github.com/mayur-samrutwar/orion/types"
)

// recordLister is implemented by stores that can list past decisions.
type recordLister interface {
	Records(ctx context.Context, skip, limit int64) ([]*types.ResidencyRecord, error)
	CountRecords(ctx context.Context) (int64, error)
}

// infoServer handle how data was retrieved and stored, the echo handlers only
// translate requests and responses.
type infoServer struct {
	enc    *orion.Encoder
	reader *orion.Reader

	gate  *gate.Gate
	flows *gate.Flows
	store gate.Store

	cache   cache.Client
	pollers map[string]*external.Poller

	apiTimeout time.Duration

	metrics *metrics.Provider
	logger  *zap.Logger
}

// CanAccess is used by the residency middleware.
func (s *infoServer) CanAccess(ctx context.Context, address string) bool {
	return s.gate.CanAccess(ctx, address)
}

// ResidencyView is the gate decision of an address plus its open onboarding step.
type ResidencyView struct {
	gate.Decision
	NeedsVerification bool   `json:"needsVerification"`
	IsRejected        bool   `json:"isRejected"`
	Step              string `json:"step,omitempty"`
}

func (s *infoServer) residency(ctx context.Context, address string) *ResidencyView {
	session := gate.NewSession(address)
	view := &ResidencyView{Decision: s.gate.Evaluate(ctx, session)}
	view.NeedsVerification = view.Decision.View == gate.ViewOnboarding
	view.IsRejected = view.Decision.View == gate.ViewRestricted
	if step, ok := s.flows.Current(session.Address()); ok {
		view.Step = step.String()
	}
	return view
}

// prices returns the latest snapshot of feed. Before the poller has resolved once it
// falls back to the cached snapshot, then to a synchronous poll.
func (s *infoServer) prices(ctx context.Context, feed string) (*types.MetalPrices, error) {
	p, ok := s.pollers[feed]
	if !ok {
		return nil, errors.New("unknown price feed")
	}
	if latest := p.Latest(); latest != nil {
		return latest, nil
	}
	if s.cache != nil {
		cached, err := s.cache.Prices(ctx, feed)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, types.ErrRecordNotFound) {
			s.logger.Debug("cannot read cached prices", zap.String("feed", feed), zap.Error(err))
		}
	}
	p.Poll(ctx)
	return p.Latest(), nil
}

// cachePrices returns the poller hook that stores applied snapshots of feed.
// Fallback snapshots are not cached so a restart never serves them as live data.
func (s *infoServer) cachePrices(feed string) func(ctx context.Context, prices *types.MetalPrices) {
	return func(ctx context.Context, prices *types.MetalPrices) {
		if s.cache == nil || prices == nil || prices.Source == external.SourceFallback {
			return
		}
		if err := s.cache.UpdatePrices(ctx, feed, prices); err != nil {
			s.logger.Warn("cannot cache prices", zap.String("feed", feed), zap.Error(err))
		}
	}
}

func (s *infoServer) status() *types.ServerStatus {
	d := s.enc.Deployment()
	return &types.ServerStatus{
		Status:        "ONLINE",
		ServerVersion: cfg.ServerVersion,
		Deployment:    d.Name,
		ModuleAddress: d.Address,
	}
}

// LoadBootData publishes the server status to the cache.
func (s *infoServer) LoadBootData(ctx context.Context) error {
	s.logger.Debug("Start load boot data")
	if s.cache == nil {
		return nil
	}
	return s.cache.UpdateServerStatus(ctx, s.status())
}
