// Package build turns a document path into artifacts: it resolves the
// base-file chain, writes the merged XML and runs the code generators the
// document's metadata enables.
package build

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mixable/internal/diagnostic"
	"mixable/internal/gen"
	"mixable/internal/resolve"
	"mixable/internal/schema"
)

// Diagnostic codes raised by this package.
const (
	CodeSerialize = "serialize_failed"
	CodeGenerate  = "generate_failed"
	CodeWrite     = "write_failed"
)

// MergedXMLBackend is the GeneratedFile.Backend of the merged document.
const MergedXMLBackend = "xml"

// Result is the outcome of a successful build.
type Result struct {
	Path  string
	Chain *resolve.Chain
	// Files holds every artifact, the merged XML first.
	Files []gen.GeneratedFile
	// Written lists the paths actually written; empty on a dry run.
	Written []string
}

// Builder runs builds. Its fields are read-only once a build starts, so a
// Builder may run several builds at once.
type Builder struct {
	Fs       afero.Fs
	Logger   *zap.Logger
	Resolver *resolve.Resolver
	Backends []gen.Backend
	DryRun   bool
}

// New returns a builder over fs with every built-in backend.
func New(fs afero.Fs, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		Fs:       fs,
		Logger:   logger,
		Resolver: resolve.New(fs, logger),
		Backends: gen.DefaultBackends(),
	}
}

// Build processes one document. The result is nil whenever the
// diagnostics hold an error; nothing is written in that case.
func (b *Builder) Build(path string) (*Result, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	chain, ok := b.Resolver.Resolve(path, diags)
	if !ok || !schema.Validate(chain.Root, diags) {
		return nil, diags
	}

	res := &Result{Path: path, Chain: chain}
	meta := chain.Metadata

	diags.SetDocument(chain.Files[0])

	if meta.MergedXMLFile != "" {
		data, err := chain.Root.Document().Bytes()
		if err != nil {
			diags.AddError(CodeSerialize, err.Error(), "")

			return nil, diags
		}

		res.Files = append(res.Files, gen.GeneratedFile{Backend: MergedXMLBackend, Path: meta.MergedXMLFile, Content: data})
	}

	files, err := gen.Generate(chain.Root, meta, b.Backends)
	if err != nil {
		var fe *gen.FormatError
		if errors.As(err, &fe) && !b.DryRun {
			if werr := gen.WriteUnformatted(b.Fs, fe.File); werr == nil && fe.File.Path != "" {
				diags.AddInfo(CodeGenerate, "unformatted output written to "+gen.UnformattedPath(fe.File.Path), "")
			}
		}

		diags.AddError(CodeGenerate, err.Error(), "")

		return nil, diags
	}

	res.Files = append(res.Files, files...)

	if b.DryRun {
		return res, diags
	}

	for _, f := range res.Files {
		if f.Path == "" {
			continue
		}

		if err := gen.WriteFile(b.Fs, f.Path, f.Content); err != nil {
			diags.AddError(CodeWrite, err.Error(), "")

			return nil, diags
		}

		res.Written = append(res.Written, f.Path)

		b.Logger.Debug("artifact written", zap.String("backend", f.Backend), zap.String("path", f.Path))
	}

	return res, diags
}

// Outcome pairs a path with its build result.
type Outcome struct {
	Path        string
	Result      *Result
	Diagnostics *diagnostic.Diagnostics
}

// BuildAll builds independent documents concurrently. Outcomes keep the
// order of paths. The error is only set when ctx is cancelled.
func (b *Builder) BuildAll(ctx context.Context, paths []string) ([]Outcome, error) {
	out := make([]Outcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("building %s: %w", p, err)
			}

			res, diags := b.Build(p)
			out[i] = Outcome{Path: p, Result: res, Diagnostics: diags}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, nil
}

// Failed reports whether any outcome carries an error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Diagnostics == nil || o.Diagnostics.HasErrors() {
			return true
		}
	}

	return false
}
