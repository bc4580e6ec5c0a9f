// Package main is the entry point for poetrysort.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/poetrysort/cmd/poetrysort/commands"
	"go.trai.ch/poetrysort/internal/app"
	"go.trai.ch/poetrysort/internal/core/domain"
	_ "go.trai.ch/poetrysort/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

// run executes the CLI and maps the outcome onto the exit status:
// 0 when every table was sorted, 1 when a table was reordered, 2 on failure.
func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.StatusError.ExitCode()
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrManifestReordered) {
			return domain.StatusChanged.ExitCode()
		}
		components.Logger.Error(err)
		return domain.StatusError.ExitCode()
	}
	return domain.StatusUnchanged.ExitCode()
}
