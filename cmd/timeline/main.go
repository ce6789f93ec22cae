// Package main is the entry point for the tasks-timeline CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Create dependency injection container
	container, err := app.New(vaultDirFromArgs(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

// vaultDirFromArgs finds the --vault (-C) flag before cobra parses the arguments,
// because the container has to exist when the commands are built.
func vaultDirFromArgs(args []string) string {
	long, short := "--"+cli.VaultFlag, "-C"
	for i, arg := range args {
		if arg == "--" {
			break
		}
		switch {
		case arg == long || arg == short:
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, long+"="):
			return strings.TrimPrefix(arg, long+"=")
		case strings.HasPrefix(arg, short) && len(arg) > len(short) && !strings.HasPrefix(arg, "--"):
			return strings.TrimPrefix(strings.TrimPrefix(arg, short), "=")
		}
	}
	return "."
}
