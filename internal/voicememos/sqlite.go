package voicememos

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite"
)

const recordingsQuery = `
	SELECT ZPATH, ZCUSTOMLABEL, CAST(ZDURATION AS REAL), CAST(ZDATE AS REAL)
	FROM ZCLOUDRECORDING
	WHERE ZPATH IS NOT NULL
	ORDER BY ZDATE DESC`

// SQLiteSource reads recordings from the Voice Memos Core Data store. The
// database is opened read-only for each call.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource creates a source for the database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Recordings implements Source.
func (s *SQLiteSource) Recordings(ctx context.Context) ([]Recording, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("voice memos database not found: %s", s.path)
	}

	dsn := url.URL{Scheme: "file", Path: s.path, RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, recordingsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		var (
			rec      Recording
			label    sql.NullString
			duration sql.NullFloat64
			date     sql.NullFloat64
		)
		if err := rows.Scan(&rec.Path, &label, &duration, &date); err != nil {
			return nil, fmt.Errorf("failed to read recording: %w", err)
		}
		rec.Label = label.String
		rec.Duration = duration.Float64
		rec.Date = date.Float64
		recordings = append(recordings, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recordings: %w", err)
	}

	return recordings, nil
}
