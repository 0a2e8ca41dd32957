// Package keyvalue extracts Redis keys matching a glob together with their
// string values.
//
// The table always has the columns Key and Value, so an expected header list
// is not checked; the engine reports it as a warning instead. Keys are
// listed with KEYS, sorted, and read one GET at a time. Keys that vanish or
// hold non-string types produce an empty Value.
package keyvalue
