package coerce

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// SQL converts a value scanned into *any from a database/sql row.
//
// Drivers expose one untyped scan, so the typed extraction order
// string, int64, float64, bool, JSON, timestamp, decimal is expressed as an
// ordered type switch. dbType is the column's DatabaseTypeName and is only
// consulted to recognise JSON columns, whose text is compacted before the
// plain string rule would return it verbatim.
func SQL(val any, dbType string) string {
	if b, ok := val.([]byte); ok && isJSONType(dbType) {
		return compactJSON(b)
	}

	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return Bool(v)
	case json.RawMessage:
		return compactJSON(v)
	case time.Time:
		return Time(v)
	}

	if s, ok := number(val); ok {
		return s
	}

	switch v := val.(type) {
	case fmt.Stringer:
		// arbitrary-precision decimals and similar driver scalars
		return v.String()
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return ""
		}
		if _, again := inner.(driver.Valuer); again {
			return ""
		}
		return SQL(inner, dbType)
	}
	return ""
}

func isJSONType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "JSON", "JSONB":
		return true
	}
	return false
}

func compactJSON(b []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return string(b)
	}
	return buf.String()
}
