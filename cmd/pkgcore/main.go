// Package main is the entry point for the pkgcore CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/cmd/pkgcore/commands"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/app"
	_ "go.trai.ch/pkgcore/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, loadComponents))
}

func run(args []string, stderr io.Writer, load commands.Loader) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(load)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}

func loadComponents(ctx context.Context, configPath string) (*app.Components, error) {
	components, _, err := graft.ExecuteFor[*app.Components](config.WithPath(ctx, configPath))
	if err != nil {
		return nil, err
	}
	return components, nil
}
