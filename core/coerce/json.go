package coerce

import (
	"github.com/goccy/go-json"
)

// JSON converts a value decoded from a JSON document with UseNumber enabled.
// Strings come back verbatim; numbers keep their literal text; arrays and
// objects are re-encoded as compact JSON.
func JSON(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return Bool(v)
	case []any, map[string]any:
		out, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(out)
	}

	if s, ok := number(val); ok {
		return s
	}
	return ""
}
