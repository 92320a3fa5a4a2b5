package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliou/toolbox/internal/voicememos"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type fakeSource struct {
	recordings []voicememos.Recording
	err        error
	calls      int
}

func (f *fakeSource) Recordings(ctx context.Context) ([]voicememos.Recording, error) {
	f.calls++
	return f.recordings, f.err
}

type harness struct {
	dir    string
	source *fakeSource
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "standup.m4a"), []byte("audio"), 0644))

	return &harness{
		dir: dir,
		source: &fakeSource{recordings: []voicememos.Recording{
			{Path: "standup.m4a", Label: "Standup", Duration: 65, Date: 700000000},
			{Path: "missing.m4a", Label: "Missing", Duration: 1, Date: 600000000},
		}},
	}
}

func (h *harness) execute(args ...string) error {
	cmd := newRootCmd(&app{memos: voicememos.NewLibrary(h.source, h.dir)})
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(&h.stdout)
	cmd.SetErr(&h.stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestRoot_ListTable(t *testing.T) {
	for _, args := range [][]string{nil, {"list"}} {
		h := newHarness(t)
		require.NoError(t, h.execute(args...))

		lines := bytes.Split(bytes.TrimSpace(h.stdout.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Equal(t, "PATH\tLABEL\tDURATION\tRECORDED AT", string(lines[0]))
		assert.Contains(t, string(lines[1]), filepath.Join(h.dir, "standup.m4a")+"\tStandup\t1:05\t")
		assert.Empty(t, h.stderr.String())
	}
}

func TestRoot_ListJSON(t *testing.T) {
	for _, flag := range []string{"--json", "-j"} {
		t.Run(flag, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.execute("list", flag))

			var memos []map[string]any
			require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &memos))
			require.Len(t, memos, 1)
			assert.Equal(t, filepath.Join(h.dir, "standup.m4a"), memos[0]["path"])
			assert.Equal(t, "Standup", memos[0]["label"])
			assert.Equal(t, "1:05", memos[0]["duration"])
			assert.Equal(t, true, memos[0]["exists"])
			assert.Contains(t, memos[0], "recordedAt")
		})
	}
}

func TestRoot_ListJSONEmpty(t *testing.T) {
	h := newHarness(t)
	h.source.recordings = nil

	require.NoError(t, h.execute("--json"))
	assert.Equal(t, "[]\n", h.stdout.String())
}

func TestRoot_UnknownCommand(t *testing.T) {
	h := newHarness(t)
	err := h.execute("select")

	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, h.stderr.String(), "Unknown command: select")
	assert.Contains(t, h.stderr.String(), `Run "voice-memos --help" for usage information.`)
	assert.Zero(t, h.source.calls)
}

func TestRoot_UnknownOptionIsRejected(t *testing.T) {
	h := newHarness(t)
	err := h.execute("list", "--limit", "5")

	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Contains(t, h.stderr.String(), "unknown flag: --limit")
	assert.Zero(t, h.source.calls)
}

func TestRoot_SourceError(t *testing.T) {
	h := newHarness(t)
	h.source.err = errors.New("voice memos database not found: /nope")

	err := h.execute()
	require.Error(t, err)
	assert.EqualError(t, err, "voice memos database not found: /nope")
}

func TestRoot_Help(t *testing.T) {
	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.execute(flag))

			out := h.stdout.String()
			assert.Contains(t, out, "voice-memos - List Apple Voice Memos")
			assert.Contains(t, out, "list (default)")
			assert.Contains(t, out, "-j, --json")
			assert.Contains(t, out, "VOICE_MEMOS_DIR")
			assert.Zero(t, h.source.calls)
		})
	}
}

func TestRoot_Version(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.execute("--version"))
	assert.Equal(t, "voice-memos v"+version+"\n", h.stdout.String())
}

func TestNewParser_EmbeddedSchema(t *testing.T) {
	parser, err := newParser()
	require.NoError(t, err)

	var names []string
	for _, opt := range parser.Options() {
		names = append(names, opt.Name)
	}
	assert.Equal(t, []string{"json", "help", "version"}, names)
}
