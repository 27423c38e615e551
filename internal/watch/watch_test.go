package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

func waitFor(t *testing.T, m *Monitor, action types.WatchAction) types.WatchEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-m.Events():
			require.True(t, ok, "event channel closed while waiting for %s", action)
			if ev.Action == action {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", action)
		}
	}
}

func TestMonitorLifecycle(t *testing.T) {
	m, err := NewMonitor(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID())
	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Start())
	assert.Equal(t, StateWatching, m.State())

	m.Stop()
	assert.Equal(t, StateStopped, m.State())
}

func TestMonitorRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewMonitor(file, nil)
	assert.Equal(t, fserr.NotADirectory, fserr.KindOf(err))

	_, err = NewMonitor(filepath.Join(dir, "missing"), nil)
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))
}

func TestMonitorObservesCreate(t *testing.T) {
	dir := t.TempDir()
	m, err := NewMonitor(dir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer m.Stop()

	path := filepath.Join(dir, "born.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ev := waitFor(t, m, types.ActionCreated)
	assert.Equal(t, "born.txt", ev.FileName)
}

func TestMonitorObservesDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	m, err := NewMonitor(dir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer m.Stop()

	require.NoError(t, os.Remove(path))
	ev := waitFor(t, m, types.ActionDeleted)
	assert.Equal(t, "doomed.txt", ev.FileName)
}

func TestMonitorNoEventsAfterStop(t *testing.T) {
	dir := t.TempDir()
	m, err := NewMonitor(dir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Start())

	m.Stop()

	// Channel closes once the loop exits; drain whatever was in flight.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-m.Events():
			if !ok {
				goto closed
			}
		case <-deadline:
			t.Fatal("event channel did not close after Stop")
		}
	}
closed:
	// Changes after Stop are never delivered.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	_, ok := <-m.Events()
	assert.False(t, ok)
}

func TestMonitorStopBeforeStart(t *testing.T) {
	m, err := NewMonitor(t.TempDir(), nil)
	require.NoError(t, err)

	m.Stop()
	assert.Equal(t, StateStopped, m.State())

	// The channel closes even though the watch never ran.
	select {
	case _, ok := <-m.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("event channel did not close")
	}

	err = m.Start()
	require.Error(t, err)
}

func TestMonitorStopIdempotent(t *testing.T) {
	m, err := NewMonitor(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, m.Start())

	m.Stop()
	m.Stop()
	assert.Equal(t, StateStopped, m.State())
}

func TestMonitorCannotRestart(t *testing.T) {
	m, err := NewMonitor(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, m.Start())
	m.Stop()

	err = m.Start()
	require.Error(t, err)
}

func TestMapAction(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want types.WatchAction
	}{
		{fsnotify.Create, types.ActionCreated},
		{fsnotify.Remove, types.ActionDeleted},
		{fsnotify.Write, types.ActionModified},
		{fsnotify.Rename, types.ActionMovedFrom},
		{fsnotify.Chmod, types.ActionAttributes},
	}
	for _, tt := range tests {
		got, ok := mapAction(tt.op)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := mapAction(0)
	assert.False(t, ok)
}

func TestManager(t *testing.T) {
	mgr := NewManager(0, nil)
	dir := t.TempDir()

	m, err := mgr.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.Count())

	got, err := mgr.Get(m.ID())
	require.NoError(t, err)
	assert.Same(t, m, got)

	require.NoError(t, mgr.Close(m.ID()))
	assert.Equal(t, 0, mgr.Count())
	assert.Equal(t, StateStopped, m.State())

	err = mgr.Close(m.ID())
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))
}

func TestManagerMonitorLimit(t *testing.T) {
	mgr := NewManager(1, nil)
	m, err := mgr.Open(t.TempDir())
	require.NoError(t, err)

	_, err = mgr.Open(t.TempDir())
	assert.Equal(t, fserr.Unavailable, fserr.KindOf(err))

	require.NoError(t, mgr.Close(m.ID()))
	m2, err := mgr.Open(t.TempDir())
	require.NoError(t, err)
	mgr.Close(m2.ID())
}

func TestManagerCloseAll(t *testing.T) {
	mgr := NewManager(0, nil)
	m1, err := mgr.Open(t.TempDir())
	require.NoError(t, err)
	m2, err := mgr.Open(t.TempDir())
	require.NoError(t, err)

	mgr.CloseAll()
	assert.Equal(t, 0, mgr.Count())
	assert.Equal(t, StateStopped, m1.State())
	assert.Equal(t, StateStopped, m2.State())
}
