package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliou/toolbox/internal/transcribe"
	"github.com/aliou/toolbox/pkg/cli"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

//go:embed options.yaml
var schemaFS embed.FS

const (
	toolName = "transcribe-audio"

	// defaultCommand marks "no file given as the first positional".
	defaultCommand = "__transcribe__"
)

// exitError reports a failure that has already been shown to the user.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type modelEnsurer interface {
	Ensure(ctx context.Context, progress transcribe.ProgressFunc) (string, error)
}

type fileTranscriber interface {
	File(ctx context.Context, input, modelPath string, translate bool) (string, error)
}

type app struct {
	models      modelEnsurer
	transcriber fileTranscriber
	modelName   string
}

type options struct {
	Output    string `option:"output"`
	Translate bool   `option:"translate"`
	Help      bool   `option:"help"`
	Version   bool   `option:"version"`
}

func newParser() (*cli.Parser, error) {
	schema, err := cli.LoadSchemaFS(schemaFS, "options.yaml")
	if err != nil {
		return nil, err
	}
	return cli.New(cli.Config{
		Options:        schema,
		DefaultCommand: defaultCommand,
		AllowUnknown:   true,
	})
}

func newRootCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                toolName + " [options] <file>...",
		Short:              "Transcribe audio files using Whisper",
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
		pterm.Error.WithWriter(stderr).Println(err.Error())
		fmt.Fprintln(stderr, pterm.Gray(fmt.Sprintf("Run %q for usage information.", toolName+" --help")))
		return &exitError{code: 1}
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

	files := result.Positionals
	if command, ok := result.Command(); ok && command != defaultCommand {
		files = append([]string{command}, files...)
	}

	if len(files) == 0 {
		pterm.Error.WithWriter(stderr).Println("No files specified")
		fmt.Fprint(stderr, helpText(parser, stderr))
		return &exitError{code: 1}
	}

	toStdout := opts.Output == "" || opts.Output == "-"
	if !toStdout {
		if err := os.MkdirAll(opts.Output, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	progress, done := a.downloadProgress(stderr)
	modelPath, err := a.models.Ensure(ctx, progress)
	done(err)
	if err != nil {
		return err
	}

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			pterm.Error.WithWriter(stderr).Printfln("File not found: %s", file)
			continue
		}

		transcript, err := a.transcriber.File(ctx, file, modelPath, opts.Translate)
		if err != nil {
			pterm.Error.WithWriter(stderr).Printfln("Error processing %s: %v", file, err)
			continue
		}
		if transcript == "" {
			continue
		}

		if toStdout {
			fmt.Fprintln(stdout, transcript)
			continue
		}

		outFile := filepath.Join(opts.Output, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))+".txt")
		if err := os.WriteFile(outFile, []byte(transcript), 0644); err != nil {
			pterm.Error.WithWriter(stderr).Printfln("Error writing %s: %v", outFile, err)
			continue
		}
		pterm.Success.WithWriter(stderr).Printfln("Done: %s", outFile)
	}

	return nil
}

// downloadProgress returns a progress callback that opens a progress bar on
// the first report, and a function that closes it. Nothing is shown when
// the model is already cached.
func (a *app) downloadProgress(w io.Writer) (transcribe.ProgressFunc, func(error)) {
	var bar *pterm.ProgressbarPrinter
	var started bool

	progress := func(downloaded, total int64) {
		if !started {
			started = true
			pterm.Warning.WithWriter(w).Printfln("Downloading model: %s", a.modelName)
			fmt.Fprintln(w, pterm.Gray("(This only happens once)"))
			if total > 0 {
				bar, _ = pterm.DefaultProgressbar.
					WithWriter(w).
					WithTotal(100).
					WithTitle("Downloading").
					Start()
			}
		}
		if bar != nil && total > 0 {
			if pct := int(downloaded * 100 / total); pct > bar.Current {
				bar.Add(pct - bar.Current)
			}
		}
	}

	done := func(err error) {
		if bar != nil {
			bar.Stop()
		}
		if !started {
			return
		}
		if err != nil {
			pterm.Error.WithWriter(w).Println("Failed to download model")
			return
		}
		pterm.Success.WithWriter(w).Println("Model downloaded")
	}

	return progress, done
}

func helpText(parser *cli.Parser, w io.Writer) string {
	width := 80
	if f, ok := w.(*os.File); ok {
		width = cli.TerminalWidth(f, width)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s - Transcribe audio files using Whisper\n\n", pterm.Bold.Sprint(toolName))
	fmt.Fprintf(&b, "%s\n  %s [options] <file>...\n\n", pterm.Bold.Sprint("USAGE:"), toolName)
	fmt.Fprintf(&b, "%s\n%s\n", pterm.Bold.Sprint("OPTIONS:"), parser.Usage(width))
	fmt.Fprintf(&b, "%s\n", pterm.Bold.Sprint("EXAMPLES:"))
	b.WriteString("  transcribe-audio recording.m4a\n")
	b.WriteString("  transcribe-audio -t french-audio.m4a\n")
	b.WriteString("  transcribe-audio -o ./transcripts *.m4a\n\n")
	fmt.Fprintf(&b, "%s\n", pterm.Bold.Sprint("NOTES:"))
	b.WriteString("  - First run downloads the model (~547MB)\n")
	b.WriteString("  - Model cached in $XDG_CACHE_HOME/whisper (or $TRANSCRIBE_CACHE_DIR)\n")
	b.WriteString("  - Supports any audio format via ffmpeg\n\n")
	fmt.Fprintf(&b, "%s\n", pterm.Bold.Sprint("ENVIRONMENT VARIABLES:"))
	b.WriteString("  TRANSCRIBE_CACHE_DIR  Override cache directory\n")
	b.WriteString("  TRANSCRIBE_MODEL_URL  Override model download URL\n")
	return b.String()
}
