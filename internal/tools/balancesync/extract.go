package balancesync

import (
	"regexp"
	"strconv"
)

// WebDefaults maps simulator control ids to the numeric defaults embedded in
// their value attributes.
type WebDefaults map[string]float64

var (
	inputTagPattern = regexp.MustCompile(`(?i)<input\s[^>]*>`)
	// Attribute patterns require leading whitespace so that id="..." never
	// matches inside another attribute such as data-id="...".
	idAttrPattern    = regexp.MustCompile(`\sid="([^"]+)"`)
	valueAttrPattern = regexp.MustCompile(`\svalue="([^"]+)"`)
)

// ExtractWebDefaults scans simulator markup for input elements carrying both
// an id and a value attribute whose content parses as a number. Elements
// missing either attribute, or holding a non-numeric value, are skipped
// silently. When the same id appears on more than one element the last
// occurrence wins.
func ExtractWebDefaults(markup string) WebDefaults {
	defaults := WebDefaults{}
	for _, tag := range inputTagPattern.FindAllString(markup, -1) {
		id := idAttrPattern.FindStringSubmatch(tag)
		if id == nil {
			continue
		}
		value := valueAttrPattern.FindStringSubmatch(tag)
		if value == nil {
			continue
		}
		parsed, err := strconv.ParseFloat(value[1], 64)
		if err != nil {
			continue
		}
		defaults[id[1]] = parsed
	}
	return defaults
}
