package balancesync

import "sort"

// Status classifies one registry entry after checking.
type Status string

// Entry statuses.
const (
	StatusMatch    Status = "match"
	StatusMismatch Status = "mismatch"
	StatusSkipped  Status = "skipped"
)

// Skip reasons surfaced in reports.
const (
	ReasonMissingControl = "not found in simulator HTML"
	ReasonMissingPath    = "not found in balance export"
	ReasonNotNumeric     = "export value is not numeric"
)

// Entry is the outcome for a single registry mapping. Value fields are nil
// when the corresponding side never produced a number.
type Entry struct {
	ControlID        string   `json:"control_id"`
	Path             string   `json:"path"`
	Status           Status   `json:"status"`
	Transformed      bool     `json:"transformed,omitempty"`
	WebValue         *float64 `json:"web_value,omitempty"`
	TransformedValue *float64 `json:"transformed_value,omitempty"`
	ConfigValue      *float64 `json:"config_value,omitempty"`
	Reason           string   `json:"reason,omitempty"`
}

// Summary aggregates entry outcomes for one check.
type Summary struct {
	Matches    int  `json:"matches"`
	Mismatches int  `json:"mismatches"`
	Skipped    int  `json:"skipped"`
	InSync     bool `json:"in_sync"`
}

// Report is the full outcome of one sync check.
type Report struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Check compares extracted web defaults against the decoded balance export
// for every mapping in the registry. The direct table is checked first, then
// the transformed table, each in control id order. Check performs no I/O and
// never mutates its inputs; running it twice over the same documents yields
// the same report.
func (r Registry) Check(defaults WebDefaults, export any) Report {
	direct := make([]DirectMapping, len(r.Direct))
	copy(direct, r.Direct)
	sort.Slice(direct, func(i, j int) bool {
		return direct[i].ControlID < direct[j].ControlID
	})

	transformed := make([]TransformedMapping, len(r.Transformed))
	copy(transformed, r.Transformed)
	sort.Slice(transformed, func(i, j int) bool {
		return transformed[i].ControlID < transformed[j].ControlID
	})

	report := Report{Entries: make([]Entry, 0, len(direct)+len(transformed))}
	for _, mapping := range direct {
		report.add(checkMapping(defaults, export, mapping.ControlID, mapping.Path, Identity(), false))
	}
	for _, mapping := range transformed {
		report.add(checkMapping(defaults, export, mapping.ControlID, mapping.Path, mapping.Transform, true))
	}
	report.Summary.InSync = report.Summary.Mismatches == 0
	return report
}

func (r *Report) add(entry Entry) {
	r.Entries = append(r.Entries, entry)
	switch entry.Status {
	case StatusMatch:
		r.Summary.Matches++
	case StatusMismatch:
		r.Summary.Mismatches++
	default:
		r.Summary.Skipped++
	}
}

func checkMapping(defaults WebDefaults, export any, controlID, path string, transform Transform, transformed bool) Entry {
	entry := Entry{ControlID: controlID, Path: path, Transformed: transformed}

	webValue, ok := defaults[controlID]
	if !ok {
		entry.Status = StatusSkipped
		entry.Reason = ReasonMissingControl
		return entry
	}
	entry.WebValue = &webValue

	node, ok := Resolve(export, path)
	if !ok {
		entry.Status = StatusSkipped
		entry.Reason = ReasonMissingPath
		return entry
	}
	configValue, ok := coerce(node)
	if !ok {
		entry.Status = StatusSkipped
		entry.Reason = ReasonNotNumeric
		return entry
	}
	entry.ConfigValue = &configValue

	compared := webValue
	if transformed {
		compared = transform.Apply(webValue)
		entry.TransformedValue = &compared
	}
	if Matches(compared, configValue) {
		entry.Status = StatusMatch
		return entry
	}
	entry.Status = StatusMismatch
	return entry
}
