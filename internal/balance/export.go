package balance

import (
	"encoding/json"
	"fmt"
)

// ExportJSON renders the config as the canonical indented export document,
// newline terminated. The sync registry resolves its paths against exactly
// this shape.
func (c Config) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal balance config: %w", err)
	}
	return append(data, '\n'), nil
}
