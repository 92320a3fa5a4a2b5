package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ProgressFunc receives the number of bytes downloaded so far and the total
// size, which is -1 when the server does not report it.
type ProgressFunc func(downloaded, total int64)

// ModelStore keeps the whisper model in the cache directory.
type ModelStore struct {
	config     *Config
	httpClient *http.Client
}

// NewModelStore creates a model store. A nil client means http.DefaultClient;
// the model is large, so no overall timeout is applied.
func NewModelStore(config *Config, client *http.Client) *ModelStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &ModelStore{
		config:     config,
		httpClient: client,
	}
}

// Cached reports whether the model file is already present.
func (s *ModelStore) Cached() bool {
	info, err := os.Stat(s.config.ModelPath())
	return err == nil && !info.IsDir()
}

// Ensure returns the path of the model, downloading it first when it is not
// cached. progress may be nil. A failed download leaves nothing behind.
func (s *ModelStore) Ensure(ctx context.Context, progress ProgressFunc) (string, error) {
	path := s.config.ModelPath()
	if s.Cached() {
		return path, nil
	}

	if err := os.MkdirAll(s.config.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	tempFile, err := os.CreateTemp(s.config.CacheDir, s.config.ModelName+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	err = s.download(ctx, tempFile, progress)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to download model %s: %w", s.config.ModelName, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to move model into place: %w", err)
	}

	return path, nil
}

func (s *ModelStore) download(ctx context.Context, dest io.Writer, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.ModelURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if progress != nil {
		progress(0, resp.ContentLength)
		body = &progressReader{reader: resp.Body, total: resp.ContentLength, callback: progress}
	}

	n, err := io.Copy(dest, body)
	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		return errors.New("download truncated")
	}

	return nil
}

// progressReader wraps an io.Reader to report download progress.
type progressReader struct {
	reader   io.Reader
	total    int64
	current  int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.current += int64(n)
		pr.callback(pr.current, pr.total)
	}
	return n, err
}
