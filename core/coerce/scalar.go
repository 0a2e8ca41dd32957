package coerce

import (
	"strconv"
	"time"
)

// TimeLayout is the canonical layout for timestamps without a zone.
const TimeLayout = "2006-01-02 15:04:05.999999999"

// zonedLayout is used when a timestamp carries a non-zero offset.
const zonedLayout = "2006-01-02 15:04:05.999999999 -07:00"

// Time formats a timestamp in the canonical layout.
func Time(t time.Time) string {
	// lib/pq reports zero-offset values in a fixed zone rather than time.UTC.
	if _, offset := t.Zone(); offset == 0 {
		return t.Format(TimeLayout)
	}
	return t.Format(zonedLayout)
}

// Float formats a float with the shortest representation that round-trips.
func Float(f float64, bits int) string {
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Bool returns "true" or "false".
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// number handles the integer and float kinds shared by every backend family.
func number(val any) (string, bool) {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case float64:
		return Float(v, 64), true
	case float32:
		return Float(float64(v), 32), true
	default:
		return "", false
	}
}
