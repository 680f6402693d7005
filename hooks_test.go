package nvram

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitHooks_FireOrder(t *testing.T) {
	h := NewExitHooks()
	var order []int
	for i := 0; i < 3; i++ {
		require.NoError(t, h.Register(func(context.Context) error {
			order = append(order, i)
			return nil
		}))
	}

	require.NoError(t, h.Fire(context.Background()))
	assert.Equal(t, []int{2, 1, 0}, order)

	// Fires at most once.
	require.NoError(t, h.Fire(context.Background()))
	assert.Len(t, order, 3)
	assert.Equal(t, 0, h.Len())
}

func TestExitHooks_JoinsErrors(t *testing.T) {
	h := NewExitHooks()
	errA := errors.New("a")
	errB := errors.New("b")
	ran := 0

	require.NoError(t, h.Register(func(context.Context) error { ran++; return errA }))
	require.NoError(t, h.Register(func(context.Context) error { ran++; return nil }))
	require.NoError(t, h.Register(func(context.Context) error { ran++; return errB }))

	err := h.Fire(context.Background())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, ran)
}

func TestExitHooks_RegisterFailures(t *testing.T) {
	h := NewExitHooks()
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, h.Register(nil), ErrHookRegistration)

	for i := 0; i < MaxExitHooks; i++ {
		require.NoError(t, h.Register(noop))
	}
	assert.ErrorIs(t, h.Register(noop), ErrHookRegistration)
	assert.Equal(t, MaxExitHooks, h.Len())

	require.NoError(t, h.Fire(context.Background()))
	err := h.Register(noop)
	assert.ErrorIs(t, err, ErrHookRegistration)
	assert.Contains(t, err.Error(), "already fired")
}

func TestExitHooks_Run(t *testing.T) {
	h := NewExitHooks()
	fired := false
	require.NoError(t, h.Register(func(context.Context) error { fired = true; return nil }))

	called := false
	err := h.Run(context.Background(), func(context.Context) error {
		called = true
		assert.False(t, fired)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, fired)
}

func TestExitHooks_RunPanic(t *testing.T) {
	h := NewExitHooks()
	fired := false
	require.NoError(t, h.Register(func(context.Context) error { fired = true; return nil }))

	assert.PanicsWithValue(t, "boom", func() {
		_ = h.Run(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.False(t, fired)
	assert.Equal(t, 1, h.Len())
}

func TestStateAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "armed", StateArmed.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(99).String())

	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "warning", OutcomeWarning.String())
	assert.Equal(t, "fatal", OutcomeFatal.String())
	assert.False(t, OutcomeWarning.IsFatal())
	assert.True(t, OutcomeFatal.IsFatal())
}
