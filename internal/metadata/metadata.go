// Package metadata reads the mx:Metadata block that tells mixable how to
// process a document: which base file it overrides, where the merged XML
// goes and which code generators run.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"mixable/internal/common"
	"mixable/internal/diagnostic"
	"mixable/internal/schema"
	"mixable/internal/xmltree"
)

// Defaults applied when a generator block leaves a name out.
const (
	DefaultCSharpNamespace = "Mixable.GeneratedCode"
	DefaultGoPackage       = "config"
)

// Diagnostic codes raised by this package.
const (
	CodeMissing   = "missing_metadata"
	CodeDuplicate = "duplicate_metadata"
	CodeInvalid   = "invalid_metadata"
	CodePolicy    = "metadata_policy"
)

// CSharp configures the C# generator.
type CSharp struct {
	NamespaceName string
	OutputFile    string
	Enabled       bool
}

// Python configures the Python generator.
type Python struct {
	OutputFile string
	Enabled    bool
}

// Go configures the Go generator.
type Go struct {
	PackageName string
	OutputFile  string
	Enabled     bool
}

// Document is the parsed metadata of one document. File paths are already
// resolved against the document's directory.
type Document struct {
	BaseFile      string
	MergedXMLFile string

	CSharp CSharp
	Python Python
	Go     Go
}

// HasCodeGen reports whether any generator is enabled.
func (m *Document) HasCodeGen() bool {
	return m.CSharp.Enabled || m.Python.Enabled || m.Go.Enabled
}

// Parse reads the single metadata element under the root of doc. Relative
// paths resolve against dir. It returns false when the document has no
// metadata element or more than one; value errors are only reported.
func Parse(doc *xmltree.Document, dir string, diags *diagnostic.Diagnostics) (*Document, bool) {
	nodes := doc.ChildrenNamed(doc.Root(), schema.MetadataTag)

	switch {
	case common.IsEmpty(nodes):
		diags.AddError(CodeMissing, "Unable to find Mixable metadata node. The metadata node is required.", doc.Path(doc.Root()))

		return nil, false
	case common.IsMultiple(nodes):
		diags.AddError(CodeDuplicate, "Only one Mixable metadata node may be specified.", doc.Path(doc.Root()))

		return nil, false
	}

	p := parser{doc: doc, dir: dir, diags: diags}
	id := nodes[0]

	m := &Document{
		BaseFile:      p.filePath(id, "BaseFile"),
		MergedXMLFile: p.filePath(id, "MergedXmlFile"),
		CSharp:        CSharp{NamespaceName: DefaultCSharpNamespace},
		Go:            Go{PackageName: DefaultGoPackage},
	}

	if cs, ok := p.child(id, "CSharp"); ok {
		m.CSharp.Enabled = p.boolean(cs, "Enabled")
		m.CSharp.OutputFile = p.filePath(cs, "OutputFile")

		if ns, ok := p.text(cs, "NamespaceName"); ok {
			m.CSharp.NamespaceName = ns
		}

		if m.CSharp.Enabled && m.CSharp.NamespaceName == "" {
			diags.AddError(CodeInvalid,
				"CSharp CodeGen must include the 'NamespaceName' value when 'Enabled' is true.", doc.Path(cs))
		}
	}

	if py, ok := p.child(id, "Python"); ok {
		m.Python.Enabled = p.boolean(py, "Enabled")
		m.Python.OutputFile = p.filePath(py, "OutputFile")
	}

	if g, ok := p.child(id, "Go"); ok {
		m.Go.Enabled = p.boolean(g, "Enabled")
		m.Go.OutputFile = p.filePath(g, "OutputFile")

		if pkg, ok := p.text(g, "PackageName"); ok {
			m.Go.PackageName = pkg
		}

		if m.Go.Enabled && m.Go.PackageName == "" {
			diags.AddError(CodeInvalid,
				"Go CodeGen must include the 'PackageName' value when 'Enabled' is true.", doc.Path(g))
		}
	}

	if m.HasCodeGen() && m.BaseFile != "" {
		diags.AddError(CodePolicy, "'BaseFile' metadata should not be specified when CodeGen is enabled.", doc.Path(id))
	}

	return m, true
}

// parser reads metadata children by local name, whatever their namespace.
type parser struct {
	doc   *xmltree.Document
	dir   string
	diags *diagnostic.Diagnostics
}

func (p parser) child(id xmltree.NodeID, local string) (xmltree.NodeID, bool) {
	for _, c := range p.doc.Children(id) {
		if p.doc.Name(c).Local == local {
			return c, true
		}
	}

	return xmltree.NoNode, false
}

func (p parser) text(id xmltree.NodeID, local string) (string, bool) {
	c, ok := p.child(id, local)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(p.doc.Text(c)), true
}

func (p parser) filePath(id xmltree.NodeID, local string) string {
	v, ok := p.text(id, local)
	if !ok || v == "" {
		return ""
	}

	if filepath.IsAbs(v) {
		return filepath.Clean(v)
	}

	return filepath.Join(p.dir, v)
}

func (p parser) boolean(id xmltree.NodeID, local string) bool {
	c, ok := p.child(id, local)
	if !ok {
		return false
	}

	raw := p.doc.Text(c)

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	default:
		p.diags.AddError(CodeInvalid, fmt.Sprintf("Unable to parse '%s' as a boolean value.", raw), p.doc.Path(c))

		return false
	}
}
