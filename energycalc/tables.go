package energycalc

import (
	"strings"
	"time"
)

// TablesVersion identifies the revision of the constant tables in this file.
const TablesVersion = "2024.1"

/*
orientationK holds the k1..k9 coefficients of the solar flux polynomial for
a vertical surface per orientation.

Notes

	Source: SAP 2012, Appendix U, Table U5. Opposite diagonal orientations
	share one row (North-East with North-West, East with West, South-East
	with South-West).
*/
var orientationK = map[Orientation][9]float64{
	North:     {26.3, -38.5, 14.8, -16.5, 27.3, -11.9, -1.06, 0.0872, -0.191},
	NorthEast: {0.165, -3.68, 3.0, 6.38, -4.53, -0.405, -4.38, 4.89, -1.99},
	East:      {1.44, -2.36, 1.07, -0.514, 1.89, -1.64, -0.542, -0.757, 0.604},
	SouthEast: {-2.95, 2.89, 1.17, 5.67, -3.54, -4.28, -2.72, -0.25, 3.07},
	South:     {-0.66, -0.106, 2.93, 3.63, -0.374, -7.4, -2.71, -0.991, 4.59},
	SouthWest: {-2.95, 2.89, 1.17, 5.67, -3.54, -4.28, -2.72, -0.25, 3.07},
	West:      {1.44, -2.36, 1.07, -0.514, 1.89, -1.64, -0.542, -0.757, 0.604},
	NorthWest: {0.165, -3.68, 3.0, 6.38, -4.53, -0.405, -4.38, 4.89, -1.99},
}

// OrientationK returns the k1..k9 coefficients of an orientation.
func OrientationK(o Orientation) ([9]float64, bool) {
	k, ok := orientationK[o]
	return k, ok
}

// Solar declination per month, degree. Source: SAP 2012, Table U3.
var solarDeclination = Monthly{-20.7, -12.8, -1.8, 9.8, 18.8, 23.1, 21.2, 13.7, 2.9, -8.7, -18.4, -23.0}

// SolarDeclination returns the declination of a month, degree.
func SolarDeclination(month time.Month) float64 {
	return solarDeclination.Month(month)
}

// Utilisation exponent a of the degree-time procedure per month
var monthExponent = Monthly{
	2.17486, // Jan
	2.17342, // Feb
	2.17394, // Mar
	2.17388, // Apr
	2.17111, // May
	2.17342, // Jun
	2.17246, // Jul
	2.17542, // Aug
	2.17677, // Sep
	2.17486, // Oct
	2.17383, // Nov
	2.17481, // Dec
}

// MonthExponent returns the exponent a of a month.
func MonthExponent(month time.Month) float64 {
	return monthExponent.Month(month)
}

// hourSlotLabels are the operating-hour labels, index = hour of day.
var hourSlotLabels = [24]string{
	"12am - 1am", "1am - 2am", "2am - 3am", "3am - 4am", "4am - 5am", "5am - 6am",
	"6am - 7am", "7am - 8am", "8am - 9am", "9am - 10am", "10am - 11am", "11am - 12pm",
	"12pm - 1pm", "1pm - 2pm", "2pm - 3pm", "3pm - 4pm", "4pm - 5pm", "5pm - 6pm",
	"6pm - 7pm", "7pm - 8pm", "8pm - 9pm", "9pm - 10pm", "10pm - 11pm", "11pm - 12am",
}

// HourSlotLabel returns the label of an hour of day (0-23).
func HourSlotLabel(hour int) string {
	if hour < 0 || hour > 23 {
		return ""
	}
	return hourSlotLabels[hour]
}

// HourFromSlotLabel returns the hour of day of a label such as "7pm - 8pm".
func HourFromSlotLabel(label string) (int, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(label), " "))
	for h, l := range hourSlotLabels {
		if l == key {
			return h, true
		}
	}
	return 0, false
}
