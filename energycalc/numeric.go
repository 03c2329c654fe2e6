package energycalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

/*
ParseNumeric reads a user-entered number.

Args

	s text as typed by the user

Returns

	0 when s is empty (the value has not been entered yet), the parsed value
	otherwise. Text that is present but not a finite number fails with
	ErrInvalidNumber.
*/
func ParseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	return v, nil
}

// ParseOptional is ParseNumeric that also reports whether a value was given.
func ParseOptional(s string) (float64, bool, error) {
	if strings.TrimSpace(s) == "" {
		return 0, false, nil
	}
	v, err := ParseNumeric(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// ParseInt is the integer counterpart of ParseNumeric. Fractions are rejected.
func ParseInt(s string) (int, error) {
	v, err := ParseNumeric(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	return int(v), nil
}

// Round rounds value to the given number of decimal places. The engine keeps
// full precision; this is meant for reports.
func Round(value float64, decimalPlaces int) float64 {
	shift := math.Pow10(decimalPlaces)
	return math.Round(value*shift) / shift
}
