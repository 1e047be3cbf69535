package exporter

import (
	"math"
	"strconv"
)

// FormatFloat formats a float64 value for CSV output. Missing values (NaN)
// become the empty string so they round-trip as missing.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatFloatFixed formats a float64 with a fixed number of decimal places;
// missing values become the empty string.
func FormatFloatFixed(f float64, prec int) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// FormatInt formats an int value for CSV output. Zero is treated as a real
// value; use FormatCode for classification codes where zero means missing.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatCode formats a classification code (SIC, NAICS) where 0 means the
// code was not reported.
func FormatCode(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}

// FormatBool formats a boolean value for CSV output
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ParseFloat parses a CSV cell into a float64, mapping the empty string to
// NaN (missing).
func ParseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseInt parses a CSV cell into an int, mapping the empty string and
// unparseable cells to 0.
func ParseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// ParseBool parses a CSV cell into a bool; anything but "true" is false.
func ParseBool(s string) bool {
	return s == "true"
}
