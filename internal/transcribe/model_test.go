package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, url string) *Config {
	t.Helper()
	return &Config{
		CacheDir:  filepath.Join(t.TempDir(), "whisper"),
		ModelName: "ggml-test.bin",
		ModelURL:  url,
		FFmpeg:    "ffmpeg",
		Whisper:   "whisper-cli",
	}
}

func TestModelStore_Ensure_Downloads(t *testing.T) {
	payload := []byte("model-weights")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	store := NewModelStore(cfg, server.Client())
	assert.False(t, store.Cached())

	var calls int
	var last int64
	path, err := store.Ensure(context.Background(), func(downloaded, total int64) {
		calls++
		last = downloaded
		assert.Equal(t, int64(len(payload)), total)
	})
	require.NoError(t, err)

	assert.Equal(t, cfg.ModelPath(), path)
	assert.True(t, store.Cached())
	assert.GreaterOrEqual(t, calls, 2)
	assert.Equal(t, int64(len(payload)), last)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	entries, err := os.ReadDir(cfg.CacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no partial files left behind")
}

func TestModelStore_Ensure_Cached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached model must not be downloaded")
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	require.NoError(t, os.MkdirAll(cfg.CacheDir, 0755))
	require.NoError(t, os.WriteFile(cfg.ModelPath(), []byte("cached"), 0644))

	path, err := NewModelStore(cfg, server.Client()).Ensure(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.ModelPath(), path)
}

func TestModelStore_Ensure_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	store := NewModelStore(cfg, server.Client())

	_, err := store.Ensure(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.False(t, store.Cached())

	entries, err := os.ReadDir(cfg.CacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestModelStore_Ensure_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t, server.URL)
	_, err := NewModelStore(cfg, server.Client()).Ensure(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
