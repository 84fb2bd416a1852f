package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_isConfigEvent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	other := filepath.Join(filepath.Dir(store.Path()), "other.toml")

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{name: "write", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Write}, expected: true},
		{name: "create", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Create}, expected: true},
		{name: "rename", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Rename}, expected: true},
		{name: "chmod ignored", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Chmod}, expected: false},
		{name: "remove ignored", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Remove}, expected: false},
		{name: "other file ignored", event: fsnotify.Event{Name: other, Op: fsnotify.Write}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.isConfigEvent(tt.event))
		})
	}
}

func TestConfigStore_Watch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("server.port", 3000))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[server]\nport = 5000\n"), 0600))

	// A write can surface as several events; wait for the final content.
	deadline := time.After(2 * time.Second)
	for store.GetInt("server.port") != 5000 {
		select {
		case <-changed:
		case <-deadline:
			t.Fatal("timeout waiting for config reload")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestConfigStore_Watch_ConcurrentWriterNeverClearsToken(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, writer.Set("server.auth_token", "secret"))

	watched, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.Equal(t, "secret", watched.GetString("server.auth_token"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watched.Watch(ctx, nil) }()
	time.Sleep(100 * time.Millisecond)

	var wg sync.WaitGroup
	var cleared atomic.Bool
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if watched.GetString("server.auth_token") == "" {
				cleared.Store(true)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		require.NoError(t, writer.Set("server.auth_token", "secret"))
	}
	// Let the watcher drain its queued events before checking.
	time.Sleep(200 * time.Millisecond)
	close(stop)
	wg.Wait()

	assert.False(t, cleared.Load(), "auth token observed empty during reload")
	assert.Equal(t, "secret", watched.GetString("server.auth_token"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
