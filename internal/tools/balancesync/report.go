package balancesync

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const separatorWidth = 70

// WriteText renders the report as the classic check output: header, one line
// per skip, a detail block per mismatch, and the results banner. Verbose
// output adds OK lines and the transformed skips that the default output
// only counts.
func WriteText(w io.Writer, report Report, verbose bool) {
	fmt.Fprintln(w, "Balance Sync Check: Web Simulator vs BalanceConfig Export")
	fmt.Fprintln(w, strings.Repeat("=", separatorWidth))
	fmt.Fprintln(w)

	for _, entry := range report.Entries {
		writeEntry(w, entry, verbose)
	}

	fmt.Fprintln(w, strings.Repeat("=", separatorWidth))
	fmt.Fprintf(w, "Results: %d OK, %d MISMATCH, %d SKIPPED\n",
		report.Summary.Matches, report.Summary.Mismatches, report.Summary.Skipped)
	fmt.Fprintln(w)

	if report.Summary.InSync {
		fmt.Fprintln(w, "PASS: All checked values are in sync.")
		return
	}
	fmt.Fprintln(w, "FAIL: Web simulator defaults are out of sync with BalanceConfig.")
	fmt.Fprintln(w, "Update the HTML input default values to match BalanceConfig.")
}

func writeEntry(w io.Writer, entry Entry, verbose bool) {
	switch entry.Status {
	case StatusMatch:
		if verbose {
			fmt.Fprintf(w, "  OK  %s\n", entry.ControlID)
		}
	case StatusSkipped:
		if entry.Transformed && !verbose {
			return
		}
		if entry.Reason == ReasonMissingControl {
			fmt.Fprintf(w, "  SKIP  %s -- %s\n", entry.ControlID, entry.Reason)
			return
		}
		fmt.Fprintf(w, "  SKIP  %s -> %s -- %s\n", entry.ControlID, entry.Path, entry.Reason)
	case StatusMismatch:
		if entry.Transformed {
			fmt.Fprintf(w, "  MISMATCH  %s (transformed)\n", entry.ControlID)
			fmt.Fprintf(w, "            Web default: %g -> %g\n",
				floatValue(entry.WebValue), floatValue(entry.TransformedValue))
		} else {
			fmt.Fprintf(w, "  MISMATCH  %s\n", entry.ControlID)
			fmt.Fprintf(w, "            Web default: %g\n", floatValue(entry.WebValue))
		}
		fmt.Fprintf(w, "            Config value: %g  (%s)\n", floatValue(entry.ConfigValue), entry.Path)
		fmt.Fprintln(w)
	}
}

// WriteJSON renders the report as an indented JSON document.
func WriteJSON(w io.Writer, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func floatValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
