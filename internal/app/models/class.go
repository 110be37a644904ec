package models

import (
	"strconv"
	"strings"
)

// NormalizeClass converts a raw class label to its canonical stored form.
// Numeric-only labels become "Class N" and anything mentioning "nur" becomes
// "Nursery"; everything else is stored trimmed but otherwise verbatim.
// Normalization happens once, on the write path, so the stored label is the
// single source of truth for lookups.
func NormalizeClass(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	if n, err := strconv.Atoi(label); err == nil {
		return "Class " + strconv.Itoa(n)
	}

	if strings.Contains(strings.ToLower(label), "nur") {
		return "Nursery"
	}

	return label
}
