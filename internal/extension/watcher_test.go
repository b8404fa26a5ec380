package extension

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRelevantChange(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"go source write", fsnotify.Event{Name: "/ext/a.go", Op: fsnotify.Write}, true},
		{"manifest write", fsnotify.Event{Name: "/ext/extension.yaml", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "/ext/a.go", Op: fsnotify.Chmod}, false},
		{"dotfile", fsnotify.Event{Name: "/ext/.swap.go", Op: fsnotify.Write}, false},
		{"unrelated extension", fsnotify.Event{Name: "/ext/readme.md", Op: fsnotify.Write}, false},
		{"directory-looking path", fsnotify.Event{Name: "/ext/newdir", Op: fsnotify.Create}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, relevantChange(tc.ev))
		})
	}
}

func TestWatcherResolveRoot(t *testing.T) {
	w := &Watcher{roots: map[string]bool{"/exts": true}}

	root, ok := w.resolveRoot("/exts/a.go")
	require.True(t, ok)
	assert.Equal(t, "/exts", root)

	root, ok = w.resolveRoot("/exts/pkg/extension.go")
	require.True(t, ok)
	assert.Equal(t, "/exts", root)

	_, ok = w.resolveRoot("/somewhere/else/a.go")
	assert.False(t, ok)
}

func TestWatcherFiresAfterQuietPeriod(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var fired []string
	w, err := NewWatcher(50*time.Millisecond, zap.NewNop(), func(d string) {
		mu.Lock()
		fired = append(fired, d)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Watch(dir))

	// A burst of writes within the quiet period collapses to one reload.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ext.go"), []byte("package x\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) >= 1
	}, 5*time.Second, 20*time.Millisecond, "watcher never fired")

	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{dir}, fired, "burst must collapse to a single reload")
}

func TestWatcherReloadsAgainForChangesDuringReload(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	var once sync.Once
	releaseFirst := func() { once.Do(func() { close(release) }) }

	w, err := NewWatcher(50*time.Millisecond, zap.NewNop(), func(string) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			<-release
		}
	})
	require.NoError(t, err)
	defer w.Stop()
	defer releaseFirst()
	require.NoError(t, w.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ext.go"), []byte("package x\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, 5*time.Second, 20*time.Millisecond, "first reload never started")

	// This edit settles while the first reload is still running; it must
	// not be swallowed by the reload already in flight.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ext.go"), []byte("package y\n"), 0o644))
	time.Sleep(400 * time.Millisecond)
	releaseFirst()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 2
	}, 5*time.Second, 20*time.Millisecond, "edit during the reload must trigger a follow-up reload")
}

func TestWatcherStopWaitsForInflightReload(t *testing.T) {
	dir := t.TempDir()

	started := make(chan struct{}, 4)
	var mu sync.Mutex
	finished := false
	w, err := NewWatcher(50*time.Millisecond, zap.NewNop(), func(string) {
		started <- struct{}{}
		time.Sleep(200 * time.Millisecond)
		mu.Lock()
		finished = true
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ext.go"), []byte("package x\n"), 0o644))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("reload never started")
	}

	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished, "Stop returned while a reload was still running")
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(time.Second, zap.NewNop(), func(string) {})
	require.NoError(t, err)

	w.Stop()
	w.Stop()
}

func TestWatcherIgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	fired := 0
	w, err := NewWatcher(50*time.Millisecond, zap.NewNop(), func(string) {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("hi"), 0o644))

	time.Sleep(500 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, fired)
}
