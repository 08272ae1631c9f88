package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/gridagentgo/internal/cli"
)

// main is the entrypoint for the gridagent binary.
func main() {
	// Use a minimal logger until a role configures the full one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) (err error) {
	// The app panics on critical startup errors (e.g. an unreadable
	// config file); recover here to provide a clean exit message.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()

	return cli.NewApp(outW).Run(args)
}
