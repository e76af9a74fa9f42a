package utils

import (
	"path/filepath"
	"strings"
)

// DefaultOutputPath names the output after the source file's stem, in the
// current directory, with ext appended when it is not empty.
func DefaultOutputPath(source, ext string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + ext
}
