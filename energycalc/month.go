package energycalc

import "time"

const monthsPerYear = 12

// Monthly holds one value per calendar month, January first.
type Monthly [monthsPerYear]float64

// Slice returns a copy of the values as a slice.
func (m Monthly) Slice() []float64 {
	s := make([]float64, monthsPerYear)
	copy(s, m[:])
	return s
}

// Month returns the value for a calendar month (1-12).
func (m Monthly) Month(month time.Month) float64 {
	return m[month-1]
}

// Months returns the twelve calendar months in order.
func Months() []time.Month {
	ms := make([]time.Month, monthsPerYear)
	for i := range ms {
		ms[i] = time.Month(i + 1)
	}
	return ms
}

// days per month of the non-leap design year
var daysInMonth = [monthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days of the month in the design year.
func DaysInMonth(month time.Month) int {
	return daysInMonth[month-1]
}

// IsWinterMonth reports whether the winter shading coefficient applies.
// The winter set is January-March and October-December.
func IsWinterMonth(month time.Month) bool {
	switch month {
	case time.January, time.February, time.March, time.October, time.November, time.December:
		return true
	default:
		return false
	}
}
