// Package utils contains general helper functions used across the dirtree tool.
package utils

import (
	"strings"
)

// HiddenNamePrefix marks entries that are hidden unless explicitly requested.
const HiddenNamePrefix = "."

// IsHiddenName reports whether a base name denotes a hidden entry.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, HiddenNamePrefix)
}

// NormalizeFormat lowercases and trims a user-supplied output format name.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
