package audio

import (
	"os"
	"strings"
)

// ResolveDirectory normalizes a configured output directory into a prefix for
// output paths. An empty input means the current working directory and resolves
// to "". Trailing separators are stripped, except for the filesystem root.
// The directory is not checked for existence.
func ResolveDirectory(dir string) string {
	if dir == "" {
		return ""
	}
	trimmed := strings.TrimRight(dir, string(os.PathSeparator)+"/")
	if trimmed == "" {
		return string(os.PathSeparator)
	}
	return trimmed
}
