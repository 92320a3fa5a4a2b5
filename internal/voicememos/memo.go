package voicememos

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// appleEpochOffset is the number of seconds between the Unix epoch and
// the Core Data reference date, 2001-01-01 UTC.
const appleEpochOffset = 978307200

// Recording is one row of the recordings table.
type Recording struct {
	// Path is relative to the recordings directory.
	Path string
	// Label is empty when the user never renamed the recording.
	Label string
	// Duration is in seconds.
	Duration float64
	// Date is in seconds since the Core Data reference date.
	Date float64
}

// Source yields recordings, newest first.
type Source interface {
	Recordings(ctx context.Context) ([]Recording, error)
}

// Memo is a recording whose audio file is present on disk.
type Memo struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	Duration   string `json:"duration"`
	RecordedAt string `json:"recordedAt"`
	Exists     bool   `json:"exists"`
}

// Library lists the memos of one recordings directory.
type Library struct {
	source Source
	dir    string
}

// NewLibrary creates a library that resolves the paths returned by source
// against dir.
func NewLibrary(source Source, dir string) *Library {
	return &Library{source: source, dir: dir}
}

// List returns the memos in source order. Recordings whose file is missing
// are left out.
func (l *Library) List(ctx context.Context) ([]Memo, error) {
	recordings, err := l.source.Recordings(ctx)
	if err != nil {
		return nil, err
	}

	memos := make([]Memo, 0, len(recordings))
	for _, rec := range recordings {
		path := filepath.Join(l.dir, rec.Path)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		label := rec.Label
		if label == "" {
			label = "Untitled"
		}

		memos = append(memos, Memo{
			Path:       path,
			Label:      label,
			Duration:   formatDuration(rec.Duration),
			RecordedAt: formatDate(appleTime(rec.Date)),
			Exists:     true,
		})
	}

	return memos, nil
}

// formatDuration renders seconds as m:ss.
func formatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func appleTime(date float64) time.Time {
	return time.Unix(0, int64((date+appleEpochOffset)*float64(time.Second)))
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
