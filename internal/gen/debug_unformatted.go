package gen

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// UnformattedPath is where WriteUnformatted puts the raw source of path.
func UnformattedPath(path string) string {
	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + ".unformatted" + ext
}

// WriteUnformatted writes raw output next to its intended destination so a
// formatting failure can be inspected. It is best-effort.
func WriteUnformatted(fs afero.Fs, file GeneratedFile) error {
	if file.Path == "" {
		return nil
	}

	return WriteFile(fs, UnformattedPath(file.Path), file.Content)
}
