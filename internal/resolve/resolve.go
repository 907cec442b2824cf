// Package resolve walks a document's chain of base files and merges it
// into a single schema tree.
//
// The starting document is the leaf (depth 0). Each BaseFile reference
// moves one level up; the document with no BaseFile is parsed as the
// schema and the chain is then merged back down, with intermediate
// validation rules above the leaf and leaf rules at the bottom.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"mixable/internal/diagnostic"
	"mixable/internal/metadata"
	"mixable/internal/schema"
	"mixable/internal/xmltree"
)

// Diagnostic codes raised by this package.
const (
	CodeUnreadable = "unreadable_document"
	CodeMalformed  = "malformed_document"
	CodeCycle      = "cycle_detected"
)

// errBailOut stops a resolution once the problem is in the diagnostics.
var errBailOut = errors.New("resolution aborted")

// Chain is a fully merged base-file chain.
type Chain struct {
	// Root is the merged schema tree; its document is the merged XML.
	Root schema.Node
	// Metadata belongs to the starting document.
	Metadata *metadata.Document
	// Files lists the chain from the starting document to the base.
	Files []string
}

// Resolver loads documents through an afero filesystem. It holds no
// per-resolution state and may be shared between goroutines.
type Resolver struct {
	fs     afero.Fs
	logger *zap.Logger
}

// New returns a resolver reading from fs. A nil logger discards output.
func New(fs afero.Fs, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{fs: fs, logger: logger}
}

type state struct {
	diags   *diagnostic.Diagnostics
	visited map[string]struct{}
	files   []string
	leaf    *metadata.Document
}

// Resolve loads path and every base file above it and merges them. It
// reports false, with the reasons in diags, when any step fails; no
// partially merged tree is returned.
func (r *Resolver) Resolve(path string, diags *diagnostic.Diagnostics) (*Chain, bool) {
	st := &state{diags: diags, visited: make(map[string]struct{})}
	before := diags.ErrorCount()

	root, err := r.resolve(cleanPath(path), 0, st)
	if err != nil || diags.ErrorCount() > before {
		return nil, false
	}

	return &Chain{Root: root, Metadata: st.leaf, Files: st.files}, true
}

// Load reads and parses a single document and its metadata.
func (r *Resolver) Load(path string, diags *diagnostic.Diagnostics) (*xmltree.Document, *metadata.Document, bool) {
	doc, meta, err := r.load(cleanPath(path), diags)

	return doc, meta, err == nil
}

func (r *Resolver) resolve(path string, depth int, st *state) (schema.Node, error) {
	if _, seen := st.visited[path]; seen {
		st.diags.SetDocument(path)
		st.diags.AddError(CodeCycle, "Cycle detected in base file chain.", path)

		return nil, errBailOut
	}

	st.visited[path] = struct{}{}
	st.files = append(st.files, path)

	doc, meta, err := r.load(path, st.diags)
	if err != nil {
		return nil, err
	}

	if depth == 0 {
		st.leaf = meta
	}

	r.logger.Debug("document loaded", zap.String("path", path), zap.Int("depth", depth))

	if meta.BaseFile == "" {
		before := st.diags.ErrorCount()

		root := schema.NewParser().Parse(doc, st.diags)
		if st.diags.ErrorCount() > before {
			return nil, errBailOut
		}

		r.logger.Debug("base classified", zap.String("path", path), zap.Stringer("root", root.Name()))

		return root, nil
	}

	root, err := r.resolve(cleanPath(meta.BaseFile), depth+1, st)
	if err != nil {
		return nil, err
	}

	st.diags.SetDocument(path)

	if !schema.Merge(root, doc, depth, schema.ValidatorFor(depth), st.diags) {
		return nil, errBailOut
	}

	r.logger.Debug("merge applied", zap.String("path", path), zap.Int("depth", depth))

	return root, nil
}

// load leaves the diagnostics document context set to path.
func (r *Resolver) load(path string, diags *diagnostic.Diagnostics) (*xmltree.Document, *metadata.Document, error) {
	diags.SetDocument(path)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		diags.AddError(CodeUnreadable, fmt.Sprintf("Unable to read document: %v", err), "")

		return nil, nil, errBailOut
	}

	doc, err := xmltree.Parse(data)
	if err != nil {
		diags.AddError(CodeMalformed, fmt.Sprintf("Unable to parse XML document: %v", err), "")

		return nil, nil, errBailOut
	}

	before := diags.ErrorCount()

	meta, ok := metadata.Parse(doc, filepath.Dir(path), diags)
	if !ok || diags.ErrorCount() > before {
		return nil, nil, errBailOut
	}

	return doc, meta, nil
}

func cleanPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}
