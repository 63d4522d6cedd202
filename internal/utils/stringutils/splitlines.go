package stringutils

import "strings"

// SplitLines splits s on newlines, returning nil for an empty string (unlike
// strings.Split, which would return a single empty element).
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
