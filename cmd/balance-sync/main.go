// Package main checks web simulator defaults against the balance export.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfgangpeters02/defend-and-descend/internal/platform/config"

	balancesynccmd "github.com/wolfgangpeters02/defend-and-descend/internal/cmd/balancesync"
)

func main() {
	cfg, err := balancesynccmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := balancesynccmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		// Mismatches and missing inputs are already reported on the
		// right stream; they only need the exit code.
		if errors.Is(err, balancesynccmd.ErrOutOfSync) || errors.Is(err, balancesynccmd.ErrMissingInput) {
			os.Exit(1)
		}
		config.Exitf("Error: %v", err)
	}
}
