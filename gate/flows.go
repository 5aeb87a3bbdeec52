// Package gate
package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/mayur-samrutwar/orion/types"
)

type Action string

const (
	ActionOpen     Action = "open"
	ActionRetry    Action = "retry"
	ActionStart    Action = "start"
	ActionDecline  Action = "decline"
	ActionDismiss  Action = "dismiss"
	ActionBack     Action = "back"
	ActionConfirm  Action = "confirm"
	ActionContinue Action = "continue"
)

// Flows keeps the open onboarding dialog of each address for callers that drive
// the flow one request at a time. Opening a flow replaces any previous one.
type Flows struct {
	mu        sync.Mutex
	gate      *Gate
	flows     map[string]*Flow
	onGranted func(address string)
}

func NewFlows(g *Gate, onGranted func(address string)) *Flows {
	return &Flows{
		gate:      g,
		flows:     make(map[string]*Flow),
		onGranted: onGranted,
	}
}

// Apply runs action against the flow of address and returns the resulting step.
// Closed flows are forgotten.
func (r *Flows) Apply(ctx context.Context, s Session, action Action) (Step, error) {
	if !s.Connected() {
		return StepClosed, types.ErrNoAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if action == ActionOpen || action == ActionRetry {
		open := r.gate.Open
		if action == ActionRetry {
			open = r.gate.Retry
		}
		f, err := open(s, r.onGranted)
		if err != nil {
			return StepClosed, err
		}
		r.flows[s.Address()] = f
		return f.Step(), nil
	}

	f, ok := r.flows[s.Address()]
	if !ok {
		return StepClosed, fmt.Errorf("%w: %s without an open flow", types.ErrInvalidTransition, action)
	}
	var err error
	switch action {
	case ActionStart:
		err = f.Start()
	case ActionDecline:
		err = f.Decline(ctx)
	case ActionDismiss:
		err = f.Dismiss()
	case ActionBack:
		err = f.Back()
	case ActionConfirm:
		err = f.Confirm(ctx)
	case ActionContinue:
		err = f.Continue()
	default:
		err = fmt.Errorf("%w: unknown action %q", types.ErrInvalidTransition, action)
	}
	if f.Step() == StepClosed {
		delete(r.flows, s.Address())
	}
	return f.Step(), err
}

// Current reports the step of the open flow of address, if any.
func (r *Flows) Current(address string) (Step, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[address]
	if !ok {
		return StepClosed, false
	}
	return f.Step(), true
}
