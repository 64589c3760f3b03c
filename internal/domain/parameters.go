package domain

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Parameters is the schema-less payload of a scenario. Its shape depends on
// the scenario type and is defined by the backend; values are scalars.
type Parameters map[string]any

// Float returns a numeric parameter. JSON numbers and numeric strings are accepted.
func (p Parameters) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String returns a string parameter.
func (p Parameters) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Keys returns parameter names in sorted order for stable rendering.
func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
