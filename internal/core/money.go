// Package core defines the household domain model.
//
// This file contains helpers for parsing monetary amounts from user input
// and formatting them for presentation. The engine itself keeps amounts
// at full float64 precision; rounding happens only at render time.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string to a non-negative amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Unparsable or negative input yields 0 rather than an error: numeric
// form fields default to zero instead of rejecting the submission.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount("12,34") -> 12.34
//	ParseAmount("abc")   -> 0
//	ParseAmount("-5")    -> 0
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// FormatAmount renders an amount with two decimal places for display.
// Calculations must use the raw float64 value; this is presentation only.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

// Round2 rounds to two decimal places, half away from zero. Exposed for
// the presentation layer; the aggregation math never calls it.
func Round2(v float64) float64 { return round2(v) }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
