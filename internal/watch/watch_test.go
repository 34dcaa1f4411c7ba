package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosekit-labs/prosecheck/internal/watch"
)

func TestWatcher_FiresOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prosecheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: false\n"), 0o644))

	var fired atomic.Int64
	w := &watch.Watcher{
		Path:     path,
		OnChange: func() { fired.Add(1) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register, then write a burst.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		2*time.Second, 50*time.Millisecond, "burst of writes must debounce to one reload")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prosecheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 1\n"), 0o644))

	var fired atomic.Int64
	w := &watch.Watcher{Path: path, OnChange: func() { fired.Add(1) }}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0o644))
	time.Sleep(500 * time.Millisecond)

	assert.Zero(t, fired.Load())
}
