package errormail

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// LazyTransport returns a provider that calls build on first use and reuses
// the result. Concurrent first calls share one build; a failed build is not
// cached, so the next report tries again.
func LazyTransport(build func() (Transport, error)) TransportProvider {
	var (
		built atomic.Pointer[Transport]
		group singleflight.Group
	)

	return func() (Transport, error) {
		// Fast path: already built.
		if t := built.Load(); t != nil {
			return *t, nil
		}

		v, err, _ := group.Do("transport", func() (any, error) {
			if t := built.Load(); t != nil {
				return *t, nil
			}
			t, err := build()
			if err != nil {
				return nil, err
			}
			if t == nil {
				return nil, ErrTransportUnavailable
			}
			built.Store(&t)
			return t, nil
		})
		if err != nil {
			return nil, err
		}
		return v.(Transport), nil
	}
}
