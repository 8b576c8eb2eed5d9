package util

import "strings"

// MaskSecret hides all but the first visible characters of s for display in
// logs. Short values are fully masked.
func MaskSecret(s string, visible int) string {
	if len(s) <= visible*2 {
		return "***"
	}
	return s[:visible] + strings.Repeat("*", 3)
}
