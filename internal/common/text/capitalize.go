package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeWords upper-cases the first letter of every word and lower-cases
// the rest, the normalization applied to profile fields before storage.
// A fresh Caser per call: cases.Caser is stateful and not goroutine-safe.
func CapitalizeWords(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}
