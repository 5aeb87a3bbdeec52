// Package gate
package gate

import (
	"context"
	"fmt"

	"github.com/mayur-samrutwar/orion/types"
)

type Step int

const (
	StepIntro Step = iota
	StepConfirmation
	StepDone
	StepClosed
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepConfirmation:
		return "confirmation"
	case StepDone:
		return "done"
	case StepClosed:
		return "closed"
	}
	return "unknown"
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Flow is one traversal of the onboarding dialog for a connected address.
// Confirm is the only transition that writes Verified. Closed and Done are exits.
type Flow struct {
	gate      *Gate
	address   string
	step      Step
	onGranted func(address string)
}

// Open starts a flow at the intro step. onGranted runs when the user continues
// past the done step; it may be nil.
func (g *Gate) Open(s Session, onGranted func(address string)) (*Flow, error) {
	if !s.Connected() {
		return nil, types.ErrNoAddress
	}
	return &Flow{
		gate:      g,
		address:   s.Address(),
		step:      StepIntro,
		onGranted: onGranted,
	}, nil
}

// Retry reopens the dialog from the restricted screen. It does not touch the record.
func (g *Gate) Retry(s Session, onGranted func(address string)) (*Flow, error) {
	return g.Open(s, onGranted)
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Address() string {
	return f.address
}

func (f *Flow) transition(from Step, to Step, action string) error {
	if f.step != from {
		return fmt.Errorf("%w: %s from %s", types.ErrInvalidTransition, action, f.step)
	}
	f.step = to
	return nil
}

func (f *Flow) Start() error {
	return f.transition(StepIntro, StepConfirmation, "start")
}

// Decline closes the dialog from the intro step. Whether the address is recorded as
// rejected depends on the gate's decline policy.
func (f *Flow) Decline(ctx context.Context) error {
	if f.step != StepIntro {
		return fmt.Errorf("%w: decline from %s", types.ErrInvalidTransition, f.step)
	}
	if f.gate.declinePolicy == DeclineReject {
		if err := f.gate.Decide(ctx, f.address, false); err != nil {
			return err
		}
	}
	f.step = StepClosed
	return nil
}

// Dismiss closes the dialog without a decision.
func (f *Flow) Dismiss() error {
	if f.step != StepIntro && f.step != StepConfirmation {
		return fmt.Errorf("%w: dismiss from %s", types.ErrInvalidTransition, f.step)
	}
	f.step = StepClosed
	return nil
}

func (f *Flow) Back() error {
	return f.transition(StepConfirmation, StepIntro, "back")
}

// Confirm records the address as verified. On a store failure the flow stays at
// the confirmation step.
func (f *Flow) Confirm(ctx context.Context) error {
	if f.step != StepConfirmation {
		return fmt.Errorf("%w: confirm from %s", types.ErrInvalidTransition, f.step)
	}
	if err := f.gate.Decide(ctx, f.address, true); err != nil {
		return err
	}
	f.step = StepDone
	return nil
}

func (f *Flow) Continue() error {
	if err := f.transition(StepDone, StepClosed, "continue"); err != nil {
		return err
	}
	if f.onGranted != nil {
		f.onGranted(f.address)
	}
	return nil
}
