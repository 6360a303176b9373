package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProber struct {
	calls atomic.Int32
	err   error
}

func (p *countingProber) Check(_ context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestProbeWorker_RunsUntilCancelled(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "reachable"},
		{name: "unreachable", err: errors.New("request failed: connection refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &countingProber{err: tc.err}
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan struct{})
			go func() {
				NewProbeWorker(p, 10*time.Millisecond).Start(ctx)
				close(done)
			}()

			require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
			cancel()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("worker did not stop")
			}
		})
	}
}

func TestProbeWorker_ZeroIntervalDisabled(t *testing.T) {
	p := &countingProber{}
	NewProbeWorker(p, 0).Start(context.Background())
	assert.Zero(t, p.calls.Load())
}
