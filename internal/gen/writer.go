package gen

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(fs afero.Fs, path string, content []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := afero.WriteFile(fs, path, content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}

// WriteFiles writes every file that has a destination. Files without one
// are skipped.
func WriteFiles(fs afero.Fs, files []GeneratedFile) error {
	for _, file := range files {
		if file.Path == "" {
			continue
		}

		if err := WriteFile(fs, file.Path, file.Content); err != nil {
			return err
		}
	}

	return nil
}
