package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/stickerbot/internal/bot/tasks"
	"github.com/edgard/stickerbot/internal/config"
)

type blockingListener struct{ started atomic.Bool }

func (l *blockingListener) Run(ctx context.Context) error {
	l.started.Store(true)
	<-ctx.Done()
	return nil
}

type failingListener struct{ err error }

func (l failingListener) Run(context.Context) error { return l.err }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(t *testing.T, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) *Scheduler {
	t.Helper()

	s, err := NewScheduler(discard(), cfg, taskMap, nil)
	require.NoError(t, err)
	return s
}

func TestRunStopsOnCancel(t *testing.T) {
	listener := &blockingListener{}
	b := NewBot(discard(), listener, newTestScheduler(t, nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	require.Eventually(t, listener.started.Load, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunPropagatesListenerError(t *testing.T) {
	errListen := errors.New("address already in use")
	b := NewBot(discard(), failingListener{err: errListen}, newTestScheduler(t, nil, nil))

	err := b.Run(context.Background())
	require.ErrorIs(t, err, errListen)
}

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	var runs atomic.Int32
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"every_second": {Enabled: true, Schedule: "* * * * * *"},
		"disabled":     {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"every_second": func(context.Context) error { runs.Add(1); return nil },
		"disabled":     func(context.Context) error { t.Error("disabled task ran"); return nil },
	}

	s := newTestScheduler(t, cfg, taskMap)
	require.NoError(t, s.Start())
	require.Error(t, s.Start(), "second start must fail")

	require.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stopping twice is a no-op")
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"bad": {Enabled: true, Schedule: "not a cron"},
	}}
	s := newTestScheduler(t, cfg, map[string]tasks.ScheduledTaskFunc{
		"bad": func(context.Context) error { return nil },
	})

	require.Error(t, s.Start())
}
