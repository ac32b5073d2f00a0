package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mei-archive/meilint/internal/app"
	"github.com/mei-archive/meilint/internal/cli"
	"github.com/mei-archive/meilint/internal/hclcfg"
)

// main is the entrypoint for meilint.
func main() {
	// Use a minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the application logic for easier testing and error
// handling. The report goes to outW, logs and errors to errW.
func run(outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hclcfg.NewLoader()
	linter := app.NewApp(outW, errW, cfg, loader)

	return linter.Run(context.Background())
}
