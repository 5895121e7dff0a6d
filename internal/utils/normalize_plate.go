package utils

import "strings"

// NormalizePlate strips spaces and dashes and uppercases a license plate so
// lookups and the unique index see one canonical form.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
