package gen

import (
	"fmt"

	"mixable/internal/metadata"
	"mixable/internal/schema"
)

// GeneratedFile is the output of one backend.
type GeneratedFile struct {
	// Backend names the backend that produced the file.
	Backend string
	// Path is the destination; empty when the metadata names none.
	Path string
	// Content is the generated source.
	Content []byte
}

// Backend renders a model in one target language.
type Backend interface {
	Name() string
	Enabled(meta *metadata.Document) bool
	Generate(model *Model, meta *metadata.Document) (GeneratedFile, error)
}

// DefaultBackends returns every built-in backend.
func DefaultBackends() []Backend {
	return []Backend{CSharpBackend{}, PythonBackend{}, GoBackend{}}
}

// FormatError is returned when generated Go source does not format. File
// holds the unformatted source for inspection.
type FormatError struct {
	File GeneratedFile
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formatting %s output: %v", e.File.Backend, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Generate runs every backend enabled by meta against root. The model is
// only built when at least one backend is enabled.
func Generate(root schema.Node, meta *metadata.Document, backends []Backend) ([]GeneratedFile, error) {
	var enabled []Backend

	for _, b := range backends {
		if b.Enabled(meta) {
			enabled = append(enabled, b)
		}
	}

	if len(enabled) == 0 {
		return nil, nil
	}

	model, err := BuildModel(root)
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}

	files := make([]GeneratedFile, 0, len(enabled))

	for _, b := range enabled {
		file, err := b.Generate(model, meta)
		if err != nil {
			return files, fmt.Errorf("generating %s: %w", b.Name(), err)
		}

		files = append(files, file)
	}

	return files, nil
}
