package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is one key/value pair of a query string.
type QueryParam struct {
	Key   string
	Value any
}

// Query is an ordered list of parameters. Parameters whose value is nil
// (including typed nil pointers) are left out of the encoded string.
type Query []QueryParam

// Param builds a QueryParam.
func Param(key string, value any) QueryParam {
	return QueryParam{Key: key, Value: value}
}

// Encode renders the query without the leading '?'.
func (q Query) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		value, ok := formatValue(p.Value)
		if !ok {
			continue
		}
		parts = append(parts, escapeComponent(p.Key)+"="+escapeComponent(value))
	}
	return strings.Join(parts, "&")
}

func formatValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	case *bool:
		if val == nil {
			return "", false
		}
		return strconv.FormatBool(*val), true
	case *int:
		if val == nil {
			return "", false
		}
		return strconv.Itoa(*val), true
	case *float64:
		if val == nil {
			return "", false
		}
		return strconv.FormatFloat(*val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// escapeComponent percent-encodes s the way encodeURIComponent does: spaces
// become %20 and the marks !'()* stay literal.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// PathSegment escapes a resource identifier for use inside a URL path.
func PathSegment(id string) string {
	return escapeComponent(id)
}

// AppendQuery appends q to rawURL with '?' or '&' as appropriate.
func AppendQuery(rawURL string, q Query) string {
	qs := q.Encode()
	if qs == "" {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + qs
}

// Ptr returns a pointer to v, for optional query and patch fields.
func Ptr[T any](v T) *T {
	return &v
}
