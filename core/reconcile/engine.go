package reconcile

import "sort"

// Headers checks discovered against expected.
// It returns nil when expected is nil or when both lists hold the same
// names with the same multiplicity, and a *MismatchError otherwise.
func Headers(discovered, expected []string) error {
	if expected == nil {
		return nil
	}
	if !Equal(discovered, expected) {
		return &MismatchError{
			Expected:   clone(expected),
			Discovered: clone(discovered),
		}
	}
	return nil
}

// Equal reports whether two header lists match ignoring order.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := Sorted(a), Sorted(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Sorted returns a sorted copy of names.
func Sorted(names []string) []string {
	out := clone(names)
	sort.Strings(out)
	return out
}

func clone(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
