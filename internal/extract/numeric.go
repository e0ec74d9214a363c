// Package extract locates CBC analyte values inside lab report text. The
// extractor is a fixed cascade of independent strategies over lines of
// document text; each strategy only writes fields the previous ones left
// empty, so running the cascade twice over the same input is idempotent.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the first numeric token in a string. Source
// documents are predominantly Russian/Kazakh locale formatted, so the
// comma is accepted as a decimal separator alongside the dot.
var numberPattern = regexp.MustCompile(`[-+]?\d+[.,]\d+|[-+]?\d+`)

// ParseNumber extracts the first numeric token from s, normalizing a
// comma decimal separator ("6,13" parses as 6.13). Returns false when s
// contains no number.
func ParseNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// percentValuePattern matches a number immediately followed by a percent
// sign, as printed in differential count lines.
var percentValuePattern = regexp.MustCompile(`(\d+[.,]\d*|\d+)\s*%`)

// parsePercent extracts the number preceding a % token from a line.
func parsePercent(line string) (float64, bool) {
	m := percentValuePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
