package balancesync

import (
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func testRegistry() Registry {
	return Registry{
		Direct: []DirectMapping{
			{ControlID: "power-base", Path: "powerGrid.basePowerBudget"},
			{ControlID: "tower-power-common", Path: "powerGrid.towerPower.common"},
		},
		Transformed: []TransformedMapping{
			{ControlID: "offline-rate", Path: "hashEconomy.offlineEarningsRate", Transform: DivideBy(100)},
		},
	}
}

const testMarkup = `
<input type="number" id="power-base" value="100">
<input type="number" id="tower-power-common" value="10">
<input type="number" id="offline-rate" value="20">`

const testExport = `{
  "powerGrid": {"basePowerBudget": 100, "towerPower": {"common": 10}},
  "hashEconomy": {"offlineEarningsRate": 0.2}
}`

func findEntry(t *testing.T, report Report, controlID string) Entry {
	t.Helper()
	for _, entry := range report.Entries {
		if entry.ControlID == controlID {
			return entry
		}
	}
	t.Fatalf("no entry for control %s", controlID)
	return Entry{}
}

func TestCheck_AllInSync(t *testing.T) {
	report := testRegistry().Check(ExtractWebDefaults(testMarkup), decodeJSON(t, testExport))

	want := Summary{Matches: 3, Mismatches: 0, Skipped: 0, InSync: true}
	if report.Summary != want {
		t.Fatalf("summary = %+v, want %+v", report.Summary, want)
	}
	for _, entry := range report.Entries {
		if entry.Status != StatusMatch {
			t.Fatalf("entry %s has status %s, want %s", entry.ControlID, entry.Status, StatusMatch)
		}
	}
}

func TestCheck_DriftedValue(t *testing.T) {
	markup := strings.Replace(testMarkup, `value="100"`, `value="90"`, 1)
	report := testRegistry().Check(ExtractWebDefaults(markup), decodeJSON(t, testExport))

	if report.Summary.Mismatches != 1 || report.Summary.InSync {
		t.Fatalf("summary = %+v, want one mismatch and out of sync", report.Summary)
	}
	entry := findEntry(t, report, "power-base")
	if entry.Status != StatusMismatch {
		t.Fatalf("status = %s, want %s", entry.Status, StatusMismatch)
	}
	if *entry.WebValue != 90 || *entry.ConfigValue != 100 {
		t.Fatalf("web %v config %v, want 90 and 100", *entry.WebValue, *entry.ConfigValue)
	}
}

func TestCheck_WithinToleranceStillMatches(t *testing.T) {
	markup := strings.Replace(testMarkup, `value="100"`, `value="100.05"`, 1)
	report := testRegistry().Check(ExtractWebDefaults(markup), decodeJSON(t, testExport))

	if !report.Summary.InSync || report.Summary.Matches != 3 {
		t.Fatalf("summary = %+v, want all matches", report.Summary)
	}
}

func TestCheck_MissingControl(t *testing.T) {
	markup := strings.Replace(testMarkup, `id="tower-power-common" `, "", 1)
	report := testRegistry().Check(ExtractWebDefaults(markup), decodeJSON(t, testExport))

	entry := findEntry(t, report, "tower-power-common")
	if entry.Status != StatusSkipped || entry.Reason != ReasonMissingControl {
		t.Fatalf("entry = %+v, want skip for missing control", entry)
	}
	if report.Summary.Skipped != 1 || !report.Summary.InSync {
		t.Fatalf("summary = %+v, want one skip and in sync", report.Summary)
	}
}

func TestCheck_MissingPath(t *testing.T) {
	export := decodeJSON(t, `{"powerGrid": {"basePowerBudget": 100}}`)
	report := testRegistry().Check(ExtractWebDefaults(testMarkup), export)

	entry := findEntry(t, report, "tower-power-common")
	if entry.Status != StatusSkipped || entry.Reason != ReasonMissingPath {
		t.Fatalf("entry = %+v, want skip for missing path", entry)
	}
	// The transformed path is gone as well; its skip counts the same way.
	if report.Summary.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", report.Summary.Skipped)
	}
	if !report.Summary.InSync {
		t.Fatalf("summary = %+v, want in sync despite skips", report.Summary)
	}
}

func TestCheck_TransformedMismatch(t *testing.T) {
	markup := strings.Replace(testMarkup, `id="offline-rate" value="20"`, `id="offline-rate" value="35"`, 1)
	report := testRegistry().Check(ExtractWebDefaults(markup), decodeJSON(t, testExport))

	entry := findEntry(t, report, "offline-rate")
	if entry.Status != StatusMismatch || !entry.Transformed {
		t.Fatalf("entry = %+v, want transformed mismatch", entry)
	}
	if *entry.WebValue != 35 || *entry.TransformedValue != 0.35 || *entry.ConfigValue != 0.2 {
		t.Fatalf("values %v -> %v vs %v, want 35 -> 0.35 vs 0.2",
			*entry.WebValue, *entry.TransformedValue, *entry.ConfigValue)
	}
}

func TestCheck_NonNumericConfigValue(t *testing.T) {
	export := decodeJSON(t, `{
  "powerGrid": {"basePowerBudget": {"nested": true}, "towerPower": {"common": 10}},
  "hashEconomy": {"offlineEarningsRate": 0.2}
}`)
	report := testRegistry().Check(ExtractWebDefaults(testMarkup), export)

	entry := findEntry(t, report, "power-base")
	if entry.Status != StatusSkipped || entry.Reason != ReasonNotNumeric {
		t.Fatalf("entry = %+v, want skip for non-numeric value", entry)
	}
}

func TestCheck_NullConfigValue(t *testing.T) {
	export := decodeJSON(t, `{
  "powerGrid": {"basePowerBudget": null, "towerPower": {"common": 10}},
  "hashEconomy": {"offlineEarningsRate": 0.2}
}`)
	report := testRegistry().Check(ExtractWebDefaults(testMarkup), export)

	// A stored null resolves as present and then fails coercion, which is
	// a different reason than a missing path.
	entry := findEntry(t, report, "power-base")
	if entry.Status != StatusSkipped || entry.Reason != ReasonNotNumeric {
		t.Fatalf("entry = %+v, want non-numeric skip for stored null", entry)
	}
}

func TestCheck_EntryOrder(t *testing.T) {
	registry := Registry{
		Direct: []DirectMapping{
			{ControlID: "zz", Path: "a"},
			{ControlID: "aa", Path: "b"},
		},
		Transformed: []TransformedMapping{
			{ControlID: "mm", Path: "c", Transform: DivideBy(100)},
			{ControlID: "bb", Path: "d", Transform: DivideBy(100)},
		},
	}
	report := registry.Check(WebDefaults{}, map[string]any{})

	var order []string
	for _, entry := range report.Entries {
		order = append(order, entry.ControlID)
	}
	want := []string{"aa", "zz", "bb", "mm"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("entry order %v, want %v", order, want)
	}
}

func TestCheck_DoesNotReorderRegistry(t *testing.T) {
	registry := Registry{
		Direct: []DirectMapping{
			{ControlID: "zz", Path: "a"},
			{ControlID: "aa", Path: "b"},
		},
	}
	registry.Check(WebDefaults{}, map[string]any{})
	if registry.Direct[0].ControlID != "zz" {
		t.Fatal("Check reordered the registry's direct table")
	}
}

func TestCheck_FormatAgnostic(t *testing.T) {
	yamlDoc := `
powerGrid:
  basePowerBudget: 100
  towerPower:
    common: 10
hashEconomy:
  offlineEarningsRate: 0.2
`
	var yamlTree any
	if err := yaml.Unmarshal([]byte(yamlDoc), &yamlTree); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	defaults := ExtractWebDefaults(testMarkup)

	jsonReport := testRegistry().Check(defaults, decodeJSON(t, testExport))
	yamlReport := testRegistry().Check(defaults, yamlTree)
	if !reflect.DeepEqual(jsonReport, yamlReport) {
		t.Fatalf("reports diverge across encodings:\n%+v\nvs\n%+v", jsonReport, yamlReport)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	registry := testRegistry()
	defaults := ExtractWebDefaults(testMarkup)
	export := decodeJSON(t, testExport)

	first := registry.Check(defaults, export)
	second := registry.Check(defaults, export)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated checks diverged: %+v vs %+v", first, second)
	}
}
