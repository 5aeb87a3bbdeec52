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

func TestFlow_DeclineAtIntroKeepsUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := setupGate(t, store, DeclineReprompt)
	s := NewSession(fakeAddress())

	require.Equal(t, ViewOnboarding, g.Evaluate(ctx, s).View)
	f, err := g.Open(s, nil)
	require.NoError(t, err)
	require.NoError(t, f.Decline(ctx))
	assert.Equal(t, StepClosed, f.Step())
	assert.Equal(t, types.StateUnknown, g.StatusFor(ctx, s.Address()).State)

	_, found, err := store.Get(ctx, Key(s.Address()))
	require.NoError(t, err)
	assert.False(t, found)

	// reconnecting later prompts again
	reloaded := setupGate(t, store, DeclineReprompt)
	assert.Equal(t, ViewOnboarding, reloaded.Evaluate(ctx, s).View)
}

func TestFlow_DeclineRejectPolicy(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, NewMemoryStore(), DeclineReject)
	s := NewSession(fakeAddress())

	f, err := g.Open(s, nil)
	require.NoError(t, err)
	require.NoError(t, f.Decline(ctx))
	assert.True(t, g.IsRejected(ctx, s.Address()))
	assert.Equal(t, ViewRestricted, g.Evaluate(ctx, s).View)
}

func TestFlow_ConfirmGrantsAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := setupGate(t, store, DeclineReprompt)
	s := NewSession(fakeAddress())

	var granted string
	f, err := g.Open(s, func(address string) { granted = address })
	require.NoError(t, err)

	require.NoError(t, f.Start())
	assert.Equal(t, StepConfirmation, f.Step())
	assert.False(t, g.CanAccess(ctx, s.Address()), "start must not decide")

	require.NoError(t, f.Back())
	assert.Equal(t, StepIntro, f.Step())
	require.NoError(t, f.Start())

	require.NoError(t, f.Confirm(ctx))
	assert.Equal(t, StepDone, f.Step())
	assert.True(t, g.CanAccess(ctx, s.Address()))
	assert.Empty(t, granted)

	require.NoError(t, f.Continue())
	assert.Equal(t, StepClosed, f.Step())
	assert.Equal(t, s.Address(), granted)

	// later visits go straight to protected content
	assert.Equal(t, ViewProtected, setupGate(t, store, DeclineReprompt).Evaluate(ctx, s).View)
}

func TestFlow_RetryFromRestricted(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, NewMemoryStore(), DeclineReprompt)
	s := NewSession(fakeAddress())
	require.NoError(t, g.Decide(ctx, s.Address(), false))

	f, err := g.Retry(s, nil)
	require.NoError(t, err)
	assert.Equal(t, StepIntro, f.Step())
	assert.True(t, g.IsRejected(ctx, s.Address()), "retry must not change the record")

	require.NoError(t, f.Decline(ctx))
	assert.True(t, g.IsRejected(ctx, s.Address()))

	f, err = g.Retry(s, nil)
	require.NoError(t, err)
	require.NoError(t, f.Start())
	require.NoError(t, f.Confirm(ctx))
	assert.True(t, g.CanAccess(ctx, s.Address()))
}

func TestFlow_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, NewMemoryStore(), DeclineReprompt)
	s := NewSession(fakeAddress())

	f, err := g.Open(s, nil)
	require.NoError(t, err)
	assert.True(t, errors.Is(f.Confirm(ctx), types.ErrInvalidTransition))
	assert.True(t, errors.Is(f.Back(), types.ErrInvalidTransition))
	assert.True(t, errors.Is(f.Continue(), types.ErrInvalidTransition))
	assert.Equal(t, StepIntro, f.Step())

	require.NoError(t, f.Start())
	assert.True(t, errors.Is(f.Decline(ctx), types.ErrInvalidTransition))
	assert.True(t, errors.Is(f.Start(), types.ErrInvalidTransition))

	require.NoError(t, f.Dismiss())
	assert.Equal(t, StepClosed, f.Step())
	assert.True(t, errors.Is(f.Dismiss(), types.ErrInvalidTransition))
	assert.False(t, g.CanAccess(ctx, s.Address()))
}

func TestFlow_ConfirmStoreFailure(t *testing.T) {
	ctx := context.Background()
	g := setupGate(t, failingStore{setErr: errors.New("down")}, DeclineReprompt)

	f, err := g.Open(NewSession(fakeAddress()), nil)
	require.NoError(t, err)
	require.NoError(t, f.Start())
	assert.Error(t, f.Confirm(ctx))
	assert.Equal(t, StepConfirmation, f.Step())
}

func TestOpen_RequiresAddress(t *testing.T) {
	g := setupGate(t, NewMemoryStore(), DeclineReprompt)
	_, err := g.Open(NewSession(""), nil)
	assert.True(t, errors.Is(err, types.ErrNoAddress))
}
