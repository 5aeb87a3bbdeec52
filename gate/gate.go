// Package gate implements the residency gate: a per-address verification flag and
// the onboarding flow that is the only way a user can change it.
package gate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/types"
)

// KeyPrefix is prepended to the wallet address to build the store key.
const KeyPrefix = "kyc_"

const (
	valueVerified = "true"
	valueRejected = "false"
)

// Store is a durable per-key string store. Get reports found=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// DeclinePolicy decides what declining at the intro step does.
type DeclinePolicy string

const (
	// DeclineReprompt closes the dialog without writing anything; the user is
	// prompted again on the next visit.
	DeclineReprompt DeclinePolicy = "reprompt"
	// DeclineReject records the address as rejected.
	DeclineReject DeclinePolicy = "reject"
)

func ParseDeclinePolicy(s string) DeclinePolicy {
	if DeclinePolicy(s) == DeclineReject {
		return DeclineReject
	}
	return DeclineReprompt
}

type View string

const (
	ViewPublic     View = "public"
	ViewOnboarding View = "onboarding"
	ViewRestricted View = "restricted"
	ViewProtected  View = "protected"
)

// Decision is what the hosting application should render for a session.
type Decision struct {
	View   View                     `json:"view"`
	Status types.VerificationStatus `json:"status"`
}

type Config struct {
	Store         Store
	DeclinePolicy DeclinePolicy

	Metrics *metrics.Provider
	Logger  *zap.Logger
}

type Gate struct {
	store         Store
	declinePolicy DeclinePolicy

	metrics *metrics.Provider
	logger  *zap.Logger
}

func New(cfg Config) (*Gate, error) {
	if cfg.Store == nil {
		return nil, errors.New("gate: store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := cfg.DeclinePolicy
	if policy == "" {
		policy = DeclineReprompt
	}
	return &Gate{
		store:         cfg.Store,
		declinePolicy: policy,
		metrics:       cfg.Metrics,
		logger:        logger.With(zap.String("component", "gate")),
	}, nil
}

// Key builds the store key of address. The address is used verbatim: no case folding,
// no trimming. Addresses that arrive through NewSession have only had surrounding
// whitespace removed.
func Key(address string) string {
	return KeyPrefix + address
}

func (g *Gate) DeclinePolicy() DeclinePolicy {
	return g.declinePolicy
}

// StatusFor never fails: a missing, corrupt or unreadable record is Unknown.
// address is looked up verbatim, see Key.
func (g *Gate) StatusFor(ctx context.Context, address string) types.VerificationStatus {
	status := types.VerificationStatus{Address: address, State: types.StateUnknown}
	if address == "" {
		return status
	}
	lgr := g.logger.With(zap.String("address", address))
	value, found, err := g.store.Get(ctx, Key(address))
	if err != nil {
		lgr.Warn("cannot read residency flag, treat as unknown", zap.Error(err))
		return status
	}
	if !found {
		return status
	}
	switch value {
	case valueVerified:
		status.State = types.StateVerified
	case valueRejected:
		status.State = types.StateRejected
	default:
		lgr.Debug("corrupt residency flag, treat as unknown", zap.String("value", value))
	}
	return status
}

// Decide overwrites the record for address. Deciding the same value twice has no
// further effect.
func (g *Gate) Decide(ctx context.Context, address string, verified bool) error {
	if address == "" {
		return types.ErrNoAddress
	}
	value, state := valueRejected, types.StateRejected
	if verified {
		value, state = valueVerified, types.StateVerified
	}
	if err := g.store.Set(ctx, Key(address), value); err != nil {
		g.logger.Error("cannot persist residency flag", zap.String("address", address), zap.Error(err))
		return err
	}
	g.metrics.RecordDecision(state.String())
	g.logger.Info("residency decided", zap.String("address", address), zap.Stringer("state", state))
	return nil
}

func (g *Gate) CanAccess(ctx context.Context, address string) bool {
	return g.StatusFor(ctx, address).State == types.StateVerified
}

func (g *Gate) NeedsVerification(ctx context.Context, address string) bool {
	return address != "" && g.StatusFor(ctx, address).State == types.StateUnknown
}

func (g *Gate) IsRejected(ctx context.Context, address string) bool {
	return address != "" && g.StatusFor(ctx, address).State == types.StateRejected
}

// Evaluate maps a session to the view to serve. A disconnected session is public
// content, which is not the same thing as a connected undecided address.
func (g *Gate) Evaluate(ctx context.Context, s Session) Decision {
	var d Decision
	if !s.Connected() {
		d.View = ViewPublic
	} else {
		d.Status = g.StatusFor(ctx, s.Address())
		switch d.Status.State {
		case types.StateVerified:
			d.View = ViewProtected
		case types.StateRejected:
			d.View = ViewRestricted
		default:
			d.View = ViewOnboarding
		}
	}
	g.metrics.RecordEvaluation(string(d.View))
	return d
}
