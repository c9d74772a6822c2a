// Package balancesync parses balance-sync command flags and runs the drift
// check between the web simulator and the balance export.
package balancesync

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wolfgangpeters02/defend-and-descend/internal/platform/config"
	"github.com/wolfgangpeters02/defend-and-descend/internal/tools/balancesync"
)

var (
	// ErrMissingInput indicates a required input document does not exist.
	// Run has already written the diagnostic to errOut when returning this.
	ErrMissingInput = errors.New("missing input document")
	// ErrOutOfSync indicates the check found at least one mismatch. The
	// report has already been written to out when Run returns this.
	ErrOutOfSync = errors.New("balance values out of sync")
)

// Config holds balance-sync command configuration.
type Config struct {
	HTMLPath   string `env:"DEFEND_DESCEND_SIMULATOR_HTML"`
	ExportPath string `env:"DEFEND_DESCEND_BALANCE_EXPORT"`
	JSONOutput bool   `env:"DEFEND_DESCEND_SYNC_JSON"`
	Verbose    bool   `env:"DEFEND_DESCEND_SYNC_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config. Paths left empty
// fall back to the tools/ artifacts at the repository root.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTMLPath, "html", cfg.HTMLPath, "path to the simulator HTML (default: tools/balance-simulator.html)")
	fs.StringVar(&cfg.ExportPath, "export", cfg.ExportPath, "path to the balance export (default: tools/balance-config-export.json)")
	fs.BoolVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "output a JSON report instead of text")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "also print OK lines and transformed skips")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.HTMLPath == "" || cfg.ExportPath == "" {
		root, err := repoRoot()
		if err != nil {
			return Config{}, err
		}
		if cfg.HTMLPath == "" {
			cfg.HTMLPath = filepath.Join(root, "tools", "balance-simulator.html")
		}
		if cfg.ExportPath == "" {
			cfg.ExportPath = filepath.Join(root, "tools", "balance-config-export.json")
		}
	}
	return cfg, nil
}

// Run executes the balance-sync command. A clean run returns nil; mismatches
// return ErrOutOfSync after the report is written and missing inputs return
// ErrMissingInput after the diagnostic is written.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	registry := balancesync.DefaultRegistry()
	if err := registry.Validate(); err != nil {
		return err
	}

	markup, err := loadSimulator(cfg.HTMLPath, errOut)
	if err != nil {
		return err
	}
	export, err := loadExport(cfg.ExportPath, errOut)
	if err != nil {
		return err
	}

	report := registry.Check(balancesync.ExtractWebDefaults(markup), export)

	if cfg.JSONOutput {
		if err := balancesync.WriteJSON(out, report); err != nil {
			return err
		}
	} else {
		balancesync.WriteText(out, report, cfg.Verbose)
	}

	if !report.Summary.InSync {
		return ErrOutOfSync
	}
	return nil
}

func loadSimulator(path string, errOut io.Writer) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(errOut, "Error: simulator HTML not found at %s\n", path)
			return "", fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return "", fmt.Errorf("read simulator HTML: %w", err)
	}
	return string(data), nil
}

func loadExport(path string, errOut io.Writer) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(errOut, "Error: balance export not found at %s\n", path)
			fmt.Fprintln(errOut)
			fmt.Fprintln(errOut, "Generate it with:")
			fmt.Fprintf(errOut, "  go run ./cmd/balance-export -out %s\n", path)
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("read balance export: %w", err)
	}

	var tree any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("decode balance export: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("decode balance export: %w", err)
		}
	}
	return tree, nil
}

func repoRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to resolve runtime caller")
	}

	dir := filepath.Dir(filename)
	for {
		candidate := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("go.mod not found from %s", filename)
}
