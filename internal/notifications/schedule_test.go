package notifications

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyThenOnTick(t *testing.T) {
	runs := make(chan struct{}, 8)
	s := NewScheduler(20*time.Millisecond, func(context.Context) {
		runs <- struct{}{}
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	// Startup run fires before the first tick.
	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("no immediate run at start")
	}

	// Then the ticker takes over.
	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("no run on tick")
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	runs := make(chan struct{}, 64)
	s := NewScheduler(10*time.Millisecond, func(context.Context) {
		runs <- struct{}{}
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	<-runs
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	// Drain anything in flight, then verify no further runs arrive.
	for {
		select {
		case <-runs:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}
	require.Empty(t, runs)
}
