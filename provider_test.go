package errormail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyTransport_BuildsOnce(t *testing.T) {
	t.Parallel()

	var builds atomic.Int32
	transport := TransportFunc(func(context.Context, Message) error { return nil })
	provider := LazyTransport(func() (Transport, error) {
		builds.Add(1)
		return transport, nil
	})

	assert.Equal(t, int32(0), builds.Load(), "nothing is built before first use")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := provider()
			assert.NoError(t, err)
			assert.NotNil(t, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestLazyTransport_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	buildErr := errors.New("mailer not wired yet")
	var fail atomic.Bool
	fail.Store(true)

	provider := LazyTransport(func() (Transport, error) {
		if fail.Load() {
			return nil, buildErr
		}
		return TransportFunc(func(context.Context, Message) error { return nil }), nil
	})

	_, err := provider()
	require.ErrorIs(t, err, buildErr)

	fail.Store(false)
	got, err := provider()
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestLazyTransport_NilTransport(t *testing.T) {
	t.Parallel()

	provider := LazyTransport(func() (Transport, error) { return nil, nil })

	_, err := provider()
	require.ErrorIs(t, err, ErrTransportUnavailable)
}
