package services

import (
	"math"
	"strconv"
	"strings"
)

// nullTokens are cell values that spreadsheet exports use for "no value".
var nullTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// IsNull reports whether a cell is blank or holds a null marker.
func IsNull(v string) bool {
	if strings.TrimSpace(v) == "" {
		return true
	}
	_, ok := nullTokens[v]
	return ok
}

// ParseNumber coerces a cell to a non-negative float. Anything that is not
// a finite number, or is negative, becomes 0.
func ParseNumber(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParsePercent converts a percentage cell such as "12%" to its fraction
// (0.12). The infinity marker "∞" and any non-numeric residue become 0.
func ParsePercent(v string) float64 {
	v = strings.ReplaceAll(v, "%", "")
	v = strings.ReplaceAll(v, "∞", "0")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f / 100
}

// TermMatcher is a case-insensitive substring rule: text matches when it
// contains any of the terms.
type TermMatcher struct {
	terms []string
}

// NewTermMatcher lower-cases terms once; blank terms are ignored.
func NewTermMatcher(terms []string) TermMatcher {
	m := TermMatcher{terms: make([]string, 0, len(terms))}
	for _, t := range terms {
		if t = strings.ToLower(t); t != "" {
			m.terms = append(m.terms, t)
		}
	}
	return m
}

// Match reports whether text contains any term.
func (m TermMatcher) Match(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, t := range m.terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Terms returns the normalized term list.
func (m TermMatcher) Terms() []string {
	return append([]string(nil), m.terms...)
}

// NicheName derives a report label from an upload's file name:
// "dental_clinics_hubli.csv" becomes "dental clinics hubli".
func NicheName(filename string) string {
	return strings.ReplaceAll(strings.TrimSuffix(filename, ".csv"), "_", " ")
}
