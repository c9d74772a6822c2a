// Package main renders the canonical balance export document.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfgangpeters02/defend-and-descend/internal/platform/config"

	balanceexportcmd "github.com/wolfgangpeters02/defend-and-descend/internal/cmd/balanceexport"
)

func main() {
	cfg, err := balanceexportcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := balanceexportcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
