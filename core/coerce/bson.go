package coerce

import (
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BSON converts a value taken from a decoded bson.D document.
func BSON(val any) string {
	switch v := val.(type) {
	case nil, bson.Null:
		return ""
	case string:
		return v
	case bool:
		return Bool(v)
	case bson.DateTime:
		return Time(v.Time().UTC())
	case bson.ObjectID:
		return v.Hex()
	case bson.Decimal128:
		return v.String()
	case bson.A, bson.D, bson.M, []any, map[string]any:
		var b strings.Builder
		writeComposite(&b, v)
		return b.String()
	}

	if s, ok := number(val); ok {
		return s
	}
	// binary, regex, timestamp, min/max keys and friends
	return ""
}

// writeComposite renders arrays as [a, b] and documents as {k: v}.
// Nested strings are quoted; map keys are sorted.
func writeComposite(b *strings.Builder, val any) {
	switch v := val.(type) {
	case bson.A:
		writeArray(b, v)
	case []any:
		writeArray(b, v)
	case bson.D:
		b.WriteByte('{')
		for i, e := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key)
			b.WriteString(": ")
			writeComposite(b, e.Value)
		}
		b.WriteByte('}')
	case bson.M:
		writeMap(b, v)
	case map[string]any:
		writeMap(b, v)
	case string:
		b.WriteString(strconv.Quote(v))
	case nil, bson.Null:
		b.WriteString("null")
	default:
		b.WriteString(BSON(v))
	}
}

func writeArray(b *strings.Builder, items []any) {
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeComposite(b, item)
	}
	b.WriteByte(']')
}

func writeMap(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		writeComposite(b, m[k])
	}
	b.WriteByte('}')
}
