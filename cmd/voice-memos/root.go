package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliou/toolbox/internal/voicememos"
	"github.com/aliou/toolbox/pkg/cli"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

//go:embed options.yaml
var schemaFS embed.FS

const (
	toolName       = "voice-memos"
	defaultCommand = "list"
)

// exitError reports a failure that has already been shown to the user.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type memoLister interface {
	List(ctx context.Context) ([]voicememos.Memo, error)
}

type app struct {
	memos memoLister
}

type options struct {
	JSON    bool `option:"json"`
	Help    bool `option:"help"`
	Version bool `option:"version"`
}

func newParser() (*cli.Parser, error) {
	schema, err := cli.LoadSchemaFS(schemaFS, "options.yaml")
	if err != nil {
		return nil, err
	}
	return cli.New(cli.Config{
		Options:        schema,
		DefaultCommand: defaultCommand,
	})
}

func newRootCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                toolName + " [command] [options]",
		Short:              "List Apple Voice Memos",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
}

func (a *app) run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	parser, err := newParser()
	if err != nil {
		return fmt.Errorf("failed to build parser: %w", err)
	}

	result, err := parser.Parse(args)
	if err != nil {
		return usageError(stderr, err.Error())
	}

	var opts options
	if err := result.Values.Decode(&opts); err != nil {
		return err
	}

	if opts.Help {
		fmt.Fprint(stdout, helpText(parser, stdout))
		return nil
	}
	if opts.Version {
		fmt.Fprintf(stdout, "%s v%s\n", toolName, version)
		return nil
	}

	switch command, _ := result.Command(); command {
	case "list":
		return a.list(ctx, stdout, opts.JSON)
	default:
		return usageError(stderr, fmt.Sprintf("Unknown command: %s", command))
	}
}

func (a *app) list(ctx context.Context, w io.Writer, asJSON bool) error {
	memos, err := a.memos.List(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(memos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode memos: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	header := []string{"PATH", "LABEL", "DURATION", "RECORDED AT"}
	for i, h := range header {
		header[i] = pterm.Gray(h)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, m := range memos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Path, m.Label, m.Duration, m.RecordedAt)
	}
	return nil
}

func usageError(w io.Writer, msg string) error {
	pterm.Error.WithWriter(w).Println(msg)
	fmt.Fprintln(w, pterm.Gray(fmt.Sprintf("Run %q for usage information.", toolName+" --help")))
	return &exitError{code: 1}
}

func helpText(parser *cli.Parser, w io.Writer) string {
	width := 80
	if f, ok := w.(*os.File); ok {
		width = cli.TerminalWidth(f, width)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s - List Apple Voice Memos\n\n", pterm.Bold.Sprint(toolName))
	fmt.Fprintf(&b, "%s\n  %s [command] [options]\n\n", pterm.Bold.Sprint("USAGE:"), toolName)
	fmt.Fprintf(&b, "%s\n  list (default)      List all memos\n\n", pterm.Bold.Sprint("COMMANDS:"))
	fmt.Fprintf(&b, "%s\n%s\n", pterm.Bold.Sprint("OPTIONS:"), parser.Usage(width))
	fmt.Fprintf(&b, "%s\n", pterm.Bold.Sprint("EXAMPLES:"))
	b.WriteString("  voice-memos list\n")
	b.WriteString("  voice-memos list --json\n")
	b.WriteString("  voice-memos --json | jq -r '.[].path' | xargs transcribe-audio\n\n")
	fmt.Fprintf(&b, "%s\n", pterm.Bold.Sprint("ENVIRONMENT VARIABLES:"))
	b.WriteString("  VOICE_MEMOS_DIR       Override recordings directory\n")
	b.WriteString("  VOICE_MEMOS_DATABASE  Override database file name\n")
	return b.String()
}
