package balancesync

import (
	"strconv"
	"strings"
)

// Resolve walks a decoded document tree along a dot-separated path. Mapping
// nodes are indexed by key and sequence nodes by non-negative integer
// position. The boolean reports whether the full path resolved; absence is
// the only false case, so a stored null stays distinguishable from a missing
// key.
func Resolve(tree any, path string) (any, bool) {
	node := tree
	for _, segment := range strings.Split(path, ".") {
		switch current := node.(type) {
		case map[string]any:
			child, ok := current[segment]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(current) {
				return nil, false
			}
			node = current[index]
		default:
			return nil, false
		}
	}
	return node, true
}

// coerce interprets a resolved node as a number. JSON decoding yields
// float64 for every number; YAML yields int for integral values and bool and
// string nodes coerce the way the export consumers do.
func coerce(node any) (float64, bool) {
	switch value := node.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case bool:
		if value {
			return 1, true
		}
		return 0, true
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
