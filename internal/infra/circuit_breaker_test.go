package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRelay = errors.New("relay refused")

func TestCircuitBreaker(t *testing.T) {
	t.Run("opens after consecutive failures", func(t *testing.T) {
		cb := NewCircuitBreaker(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, cb.Execute(func() error { return errRelay }), errRelay)
		}
		assert.Equal(t, CBOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrCircuitOpen)
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		cb := NewCircuitBreaker(3, time.Minute)
		require.Error(t, cb.Execute(func() error { return errRelay }))
		require.Error(t, cb.Execute(func() error { return errRelay }))
		require.NoError(t, cb.Execute(func() error { return nil }))
		require.Error(t, cb.Execute(func() error { return errRelay }))
		assert.Equal(t, CBClosed, cb.State())
	})

	t.Run("half-open probe closes on success", func(t *testing.T) {
		cb := NewCircuitBreaker(1, 10*time.Millisecond)
		require.Error(t, cb.Execute(func() error { return errRelay }))
		require.Equal(t, CBOpen, cb.State())

		time.Sleep(15 * time.Millisecond)
		require.Equal(t, CBHalfOpen, cb.State())
		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, CBClosed, cb.State())
	})

	t.Run("half-open probe failure reopens", func(t *testing.T) {
		cb := NewCircuitBreaker(5, 10*time.Millisecond)
		for i := 0; i < 5; i++ {
			require.Error(t, cb.Execute(func() error { return errRelay }))
		}
		time.Sleep(15 * time.Millisecond)
		require.Equal(t, CBHalfOpen, cb.State())
		require.Error(t, cb.Execute(func() error { return errRelay }))
		assert.Equal(t, CBOpen, cb.State())
	})
}
