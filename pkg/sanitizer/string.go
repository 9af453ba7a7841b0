package sanitizer

import "strings"

// TrimAndNormalize trims s and collapses every run of whitespace into one space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName is applied to guest and reviewer names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}
