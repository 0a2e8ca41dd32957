package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// MismatchError reports divergent header lists.
// Both lists are kept in the order they were supplied.
type MismatchError struct {
	// Expected is the caller-supplied header list.
	Expected []string `json:"expected"`

	// Discovered is the header list the source produced.
	Discovered []string `json:"discovered"`
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("column mismatch: expected [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Discovered, ", "))
}

// Missing returns expected names the source did not produce, sorted.
// A name expected twice but discovered once is reported once.
func (e *MismatchError) Missing() []string {
	return difference(e.Expected, e.Discovered)
}

// Unexpected returns discovered names nobody asked for, sorted.
func (e *MismatchError) Unexpected() []string {
	return difference(e.Discovered, e.Expected)
}

// difference returns the multiset a - b.
func difference(a, b []string) []string {
	counts := make(map[string]int, len(b))
	for _, name := range b {
		counts[name]++
	}
	out := []string{}
	for _, name := range a {
		if counts[name] > 0 {
			counts[name]--
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
