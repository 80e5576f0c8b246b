package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func TestRegistry_StartStop(t *testing.T) {
	reg := NewRegistry(nil, nopLogger{})
	reg.Register("noop", every(time.Hour), func(ctx context.Context) error { return nil })

	require.NoError(t, reg.Start(context.Background()))
	assert.ErrorIs(t, reg.Start(context.Background()), ErrAlreadyRunning)

	require.NoError(t, reg.Stop())
	assert.ErrorIs(t, reg.Stop(), ErrNotRunning)
}

func TestRegistry_RunNow(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(clock, nopLogger{})

	var calls int
	reg.Register("counter", every(time.Hour), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, reg.RunNow(context.Background(), "counter"))
	require.NoError(t, reg.RunNow(context.Background(), "counter"))
	assert.Equal(t, 2, calls)

	assert.ErrorIs(t, reg.RunNow(context.Background(), "missing"), ErrUnknownJob)
}

func TestRegistry_RunNowReturnsJobError(t *testing.T) {
	reg := NewRegistry(nil, nopLogger{})

	jobErr := errors.New("boom")
	reg.Register("failing", every(time.Hour), func(ctx context.Context) error {
		return jobErr
	})

	assert.ErrorIs(t, reg.RunNow(context.Background(), "failing"), jobErr)
}

func TestRegistry_Status(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(clock, nopLogger{})

	reg.Register("ok", dailyAt(0, 0), func(ctx context.Context) error { return nil })
	reg.Register("failing", every(15*time.Minute), func(ctx context.Context) error {
		return errors.New("boom")
	})

	status := reg.Status()
	assert.False(t, status.Running)
	require.Len(t, status.Jobs, 2)

	// До первого запуска нет ни времени, ни ошибки
	assert.Equal(t, "ok", status.Jobs[0].Name)
	assert.Equal(t, "daily at 00:00", status.Jobs[0].Schedule)
	assert.Nil(t, status.Jobs[0].LastRun)
	assert.Nil(t, status.Jobs[0].LastErr)

	require.NoError(t, reg.RunNow(context.Background(), "ok"))
	_ = reg.RunNow(context.Background(), "failing")

	status = reg.Status()
	require.NotNil(t, status.Jobs[0].LastRun)
	assert.Equal(t, clock.now.Format(time.RFC3339), *status.Jobs[0].LastRun)
	assert.Nil(t, status.Jobs[0].LastErr)

	require.NotNil(t, status.Jobs[1].LastErr)
	assert.Equal(t, "boom", *status.Jobs[1].LastErr)
}

func TestRegistry_RunningFlag(t *testing.T) {
	reg := NewRegistry(nil, nopLogger{})
	reg.Register("noop", every(time.Hour), func(ctx context.Context) error { return nil })

	require.NoError(t, reg.Start(context.Background()))
	assert.True(t, reg.Status().Running)

	require.NoError(t, reg.Stop())
	assert.False(t, reg.Status().Running)
}
