package f1udp

import (
	"fmt"
	"math"
)

// Reading is a decoded scalar that passed (OK) or failed its plausibility
// check. A failed reading carries the zero value and must not be applied.
type Reading[T any] struct {
	Value T
	OK    bool
}

func Valid[T any](v T) Reading[T] {
	return Reading[T]{Value: v, OK: true}
}

func (r Reading[T]) Get() (T, bool) {
	return r.Value, r.OK
}

// ApplyTo copies the value into dst when the reading is valid.
func (r Reading[T]) ApplyTo(dst *T) {
	if r.OK {
		*dst = r.Value
	}
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~uint32 | ~int64 | ~float32
}

// fieldCheck collects the names of fields that failed validation for one
// record.
type fieldCheck struct {
	outOfRange []string
}

func inRange[T number](c *fieldCheck, name string, v, min, max T) Reading[T] {
	if math.IsNaN(float64(v)) || v < min || v > max {
		c.outOfRange = append(c.outOfRange, name)
		return Reading[T]{}
	}

	return Valid(v)
}

func inRange4[T number](c *fieldCheck, name string, v [4]T, min, max T) [4]Reading[T] {
	var out [4]Reading[T]

	for i := range v {
		out[i] = inRange(c, fmt.Sprintf("%s[%d]", name, i), v[i], min, max)
	}

	return out
}

func inSet[T comparable](c *fieldCheck, name string, v T, set map[T]string) Reading[T] {
	if _, ok := set[v]; !ok {
		c.outOfRange = append(c.outOfRange, name)
		return Reading[T]{}
	}

	return Valid(v)
}
