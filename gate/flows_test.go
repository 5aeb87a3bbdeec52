// Package gate
package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayur-samrutwar/orion/types"
)

func TestFlows_Apply(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, NewMemoryStore(), DeclineReprompt)
	var granted []string
	flows := NewFlows(g, func(address string) { granted = append(granted, address) })
	s := NewSession(fakeAddress())

	_, err := flows.Apply(ctx, s, ActionStart)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))

	steps := []struct {
		action Action
		want   Step
	}{
		{ActionOpen, StepIntro},
		{ActionStart, StepConfirmation},
		{ActionBack, StepIntro},
		{ActionStart, StepConfirmation},
		{ActionConfirm, StepDone},
		{ActionContinue, StepClosed},
	}
	for _, st := range steps {
		got, err := flows.Apply(ctx, s, st.action)
		require.NoError(t, err, st.action)
		assert.Equal(t, st.want, got, st.action)
	}
	assert.Equal(t, []string{s.Address()}, granted)
	assert.True(t, g.CanAccess(ctx, s.Address()))

	_, open := flows.Current(s.Address())
	assert.False(t, open)
}

func TestFlows_InvalidActionKeepsFlow(t *testing.T) {
	ctx := context.Background()
	flows := NewFlows(setupGate(t, NewMemoryStore(), DeclineReprompt), nil)
	s := NewSession(fakeAddress())

	_, err := flows.Apply(ctx, s, ActionOpen)
	require.NoError(t, err)
	step, err := flows.Apply(ctx, s, ActionConfirm)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))
	assert.Equal(t, StepIntro, step)

	_, err = flows.Apply(ctx, s, Action("jump"))
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))

	step, open := flows.Current(s.Address())
	assert.True(t, open)
	assert.Equal(t, StepIntro, step)

	step, err = flows.Apply(ctx, s, ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, StepClosed, step)
	_, open = flows.Current(s.Address())
	assert.False(t, open)
}

func TestFlows_Disconnected(t *testing.T) {
	flows := NewFlows(setupGate(t, NewMemoryStore(), DeclineReprompt), nil)
	_, err := flows.Apply(context.Background(), NewSession(nil), ActionOpen)
	assert.True(t, errors.Is(err, types.ErrNoAddress))
}

func TestFlows_RetryReopensRejected(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, NewMemoryStore(), DeclineReject)
	flows := NewFlows(g, nil)
	s := NewSession(fakeAddress())

	_, err := flows.Apply(ctx, s, ActionOpen)
	require.NoError(t, err)
	step, err := flows.Apply(ctx, s, ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, StepClosed, step)
	require.True(t, g.IsRejected(ctx, s.Address()))

	step, err = flows.Apply(ctx, s, ActionRetry)
	require.NoError(t, err)
	assert.Equal(t, StepIntro, step)
	assert.True(t, g.IsRejected(ctx, s.Address()))

	for _, action := range []Action{ActionStart, ActionConfirm, ActionContinue} {
		_, err = flows.Apply(ctx, s, action)
		require.NoError(t, err, action)
	}
	assert.True(t, g.CanAccess(ctx, s.Address()))
}

func TestFlows_RetryNeedsAddress(t *testing.T) {
	flows := NewFlows(setupGate(t, NewMemoryStore(), DeclineReprompt), nil)
	_, err := flows.Apply(context.Background(), NewSession(""), ActionRetry)
	assert.True(t, errors.Is(err, types.ErrNoAddress))
}
