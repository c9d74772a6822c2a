// Package balanceexport parses balance-export command flags and renders the
// canonical balance export document.
package balanceexport

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wolfgangpeters02/defend-and-descend/internal/balance"
	"github.com/wolfgangpeters02/defend-and-descend/internal/platform/config"
)

// Config holds balance-export command configuration.
type Config struct {
	OutPath string `env:"DEFEND_DESCEND_EXPORT_OUT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "write the export to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the balance-export command: it validates the shipped tuning
// and renders it as the export document.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	tuning := balance.Default()
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("validate balance config: %w", err)
	}
	data, err := tuning.ExportJSON()
	if err != nil {
		return err
	}

	if cfg.OutPath == "" {
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(cfg.OutPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(cfg.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutPath, err)
	}
	fmt.Fprintf(out, "wrote %s\n", cfg.OutPath)
	return nil
}
