package config

import (
	"os"
	"strings"
)

// CleanFileName makes a single path segment safe to use as file name:
// separators and characters forbidden by the platform are dropped, as are
// leading dots so segment never becomes hidden file or parent reference.
func CleanFileName(in string) string {
	forbidden := forbiddenInFileName + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, "."), trimmedFromFileNameEnd)
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
