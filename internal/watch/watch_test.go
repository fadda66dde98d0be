package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartframe/internal/config"
	"github.com/mesh-intelligence/smartframe/internal/session"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

const (
	rawCSV       = "user_id,timestamp,name,weight,height,age,life_expectancy\nu1,2024-01-02,Ned,78,180,31,80\n"
	corruptedCSV = "timestamp,name,weight,height,age,life_expectancy\n2024-01-02,Ned,78,180,31,80\n"
)

func loadCSV(path string) (*frame.Frame, error) {
	return frame.ReadFile(path, "")
}

func setup(t *testing.T) (string, *Watcher, *[]types.State) {
	t.Helper()
	cfg, err := config.Parse([]byte(config.ExampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(rawCSV), 0o644))
	f, err := loadCSV(path)
	require.NoError(t, err)

	w := New(path, loadCSV, session.New(cfg, f), nil)
	var seen []types.State
	w.OnState = func(s types.State) { seen = append(seen, s) }
	return path, w, &seen
}

func TestHandleEventFiltersPathAndOp(t *testing.T) {
	path, w, _ := setup(t)
	now := time.Now()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.csv"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleEvent(tt.event, now))
		})
	}
	assert.Equal(t, 2, w.Stats().Events)
}

func TestFlushDebouncesAndReportsChanges(t *testing.T) {
	path, w, seen := setup(t)
	w.SetDebounce(time.Second)
	start := time.Now()

	require.NoError(t, os.WriteFile(path, []byte(corruptedCSV), 0o644))
	require.True(t, w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, start))

	w.flush(start.Add(500 * time.Millisecond))
	assert.Empty(t, *seen, "must wait for the file to settle")
	assert.Equal(t, 0, w.Stats().Reloads)

	w.flush(start.Add(time.Second))
	require.Len(t, *seen, 1)
	assert.Equal(t, types.StateCorrupted, (*seen)[0].Name)

	w.flush(start.Add(2 * time.Second))
	assert.Equal(t, 1, w.Stats().Reloads, "nothing pending after a reload")
}

func TestFlushSameColumnsIsQuiet(t *testing.T) {
	path, w, seen := setup(t)
	w.SetDebounce(0)

	require.NoError(t, os.WriteFile(path, []byte(rawCSV+"u2,2024-01-03,Tom,70,175,40,79\n"), 0o644))
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, time.Now())
	w.flush(time.Now())

	assert.Empty(t, *seen)
	assert.Equal(t, Stats{Events: 1, Reloads: 1}, w.Stats())
}

func TestFlushLoadError(t *testing.T) {
	path, w, seen := setup(t)
	w.SetDebounce(0)
	w.load = func(string) (*frame.Frame, error) { return nil, errors.New("half written") }

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, time.Now())
	w.flush(time.Now())

	assert.Empty(t, *seen)
	assert.Equal(t, 1, w.Stats().Errors)
}

func TestRunStopsOnCancel(t *testing.T) {
	_, w, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	_, w, _ := setup(t)
	w.path = filepath.Join(t.TempDir(), "gone", "data.csv")

	err := w.Run(context.Background())
	assert.Error(t, err)
}
