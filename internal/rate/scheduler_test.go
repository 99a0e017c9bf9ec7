package rate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSyncRunner struct{ mock.Mock }

func (m *MockSyncRunner) Sync(ctx context.Context, execID string) error {
	args := m.Called(ctx, execID)
	return args.Error(0)
}

func TestNewScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(new(MockSyncRunner), 0)
	require.Equal(t, 24*time.Hour, s.refreshInterval)

	s = NewScheduler(new(MockSyncRunner), -time.Second)
	require.Equal(t, 24*time.Hour, s.refreshInterval)

	s = NewScheduler(new(MockSyncRunner), time.Minute)
	require.Equal(t, time.Minute, s.refreshInterval)
}

func TestScheduler_RunsSyncOnInterval(t *testing.T) {
	var runs atomic.Int32
	runner := new(MockSyncRunner)
	runner.On("Sync", mock.Anything, mock.AnythingOfType("string")).Return(nil).Run(func(mock.Arguments) {
		runs.Add(1)
	})

	s := NewScheduler(runner, 50*time.Millisecond)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown() })

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(new(MockSyncRunner), time.Hour)

	require.NoError(t, s.Start(ctx))
	require.True(t, s.running())

	cancel()
	require.Eventually(t, func() bool { return !s.running() }, time.Second, 10*time.Millisecond)
}

func TestScheduler_ShutdownIsIdempotent(t *testing.T) {
	s := NewScheduler(new(MockSyncRunner), time.Hour)

	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
	require.False(t, s.running())
}
