// Package main implements voice-memos, which lists Apple Voice Memos
// recordings.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/aliou/toolbox/internal/voicememos"
	"github.com/aliou/toolbox/pkg/cli"
	"github.com/pterm/pterm"
)

// version is set at build time.
var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if !cli.IsInteractive(os.Stdout) {
		pterm.DisableStyling()
	}

	config, err := voicememos.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{
		memos: voicememos.NewLibrary(voicememos.NewSQLiteSource(config.DatabasePath()), config.Dir),
	}

	return newRootCmd(a).ExecuteContext(ctx)
}
