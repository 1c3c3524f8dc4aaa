package ini

import (
	"strconv"
	"strings"
)

// ValVec is the value list of one key with loosely-typed accessors.
// Out-of-range indexes and unparseable values yield zero values.
type ValVec []string

// Count returns the number of values.
func (v ValVec) Count() int { return len(v) }

// String returns the value at index, or "".
func (v ValVec) String(index int) string {
	if index < 0 || index >= len(v) {
		return ""
	}
	return v[index]
}

// FullString joins the values from index to the end with single
// spaces, reconstructing a free-form remainder-of-line value.
func (v ValVec) FullString(index int) string {
	if index < 0 || index >= len(v) {
		return ""
	}
	return strings.Join(v[index:], " ")
}

// Int returns the value at index parsed as an integer, or 0.
func (v ValVec) Int(index int) int {
	i, err := strconv.Atoi(v.String(index))
	if err != nil {
		return 0
	}
	return i
}

// Double returns the value at index parsed as a float, or 0.
func (v ValVec) Double(index int) float64 {
	d, err := strconv.ParseFloat(v.String(index), 64)
	if err != nil {
		return 0
	}
	return d
}

// Bool returns true iff the value at index is the token "true" in any
// case.
func (v ValVec) Bool(index int) bool {
	return strings.EqualFold(v.String(index), "true")
}
