package xmltree

import (
	"slices"
	"strings"
)

// NodeID addresses a node inside a Document.
type NodeID int

// NoNode is the parent of the root and of detached nodes.
const NoNode NodeID = -1

// Name is a namespace-qualified element or attribute name.
type Name struct {
	Space string // namespace URI, empty for unqualified names
	Local string
}

// String returns the name in {uri}local form.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}

	return "{" + n.Space + "}" + n.Local
}

// Attr is a single attribute. Prefix is the prefix used in the source text
// and is only relevant for serialization.
type Attr struct {
	Name   Name
	Prefix string
	Value  string
}

// IsNamespaceDecl reports whether the attribute is an xmlns declaration.
func (a Attr) IsNamespaceDecl() bool {
	return a.Prefix == xmlnsPrefix || (a.Prefix == "" && a.Name.Local == xmlnsPrefix)
}

const xmlnsPrefix = "xmlns"

type node struct {
	name     Name
	prefix   string
	attrs    []Attr
	text     string
	parent   NodeID
	children []NodeID
}

// Document is an arena of XML element nodes.
type Document struct {
	nodes []node
	root  NodeID
}

// Root returns the document element.
func (d *Document) Root() NodeID {
	return d.root
}

// Contains reports whether id addresses a node of this document.
func (d *Document) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

func (d *Document) n(id NodeID) *node {
	return &d.nodes[id]
}

func (d *Document) add(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// Name returns the qualified name of the node.
func (d *Document) Name(id NodeID) Name {
	return d.n(id).name
}

// Prefix returns the namespace prefix the node was written with.
func (d *Document) Prefix(id NodeID) string {
	return d.n(id).prefix
}

// Parent returns the parent of the node, or NoNode.
func (d *Document) Parent(id NodeID) NodeID {
	return d.n(id).parent
}

// Children returns the element children of the node in document order.
func (d *Document) Children(id NodeID) []NodeID {
	return slices.Clone(d.n(id).children)
}

// ChildrenNamed returns the element children with the given name.
func (d *Document) ChildrenNamed(id NodeID, name Name) []NodeID {
	var out []NodeID

	for _, c := range d.n(id).children {
		if d.n(c).name == name {
			out = append(out, c)
		}
	}

	return out
}

// HasChildren reports whether the node has any element children.
func (d *Document) HasChildren(id NodeID) bool {
	return len(d.n(id).children) > 0
}

// Text returns the character data of the node.
func (d *Document) Text(id NodeID) string {
	return d.n(id).text
}

// SetText replaces the character data of the node.
func (d *Document) SetText(id NodeID, text string) {
	d.n(id).text = text
}

// Attrs returns a copy of the node's attributes.
func (d *Document) Attrs(id NodeID) []Attr {
	return slices.Clone(d.n(id).attrs)
}

// Attr returns the value of the attribute with the given name.
func (d *Document) Attr(id NodeID, name Name) (string, bool) {
	for _, a := range d.n(id).attrs {
		if a.Name == name && !a.IsNamespaceDecl() {
			return a.Value, true
		}
	}

	return "", false
}

// SetAttr sets or replaces an attribute. New namespaced attributes reuse a
// prefix already declared in scope, declaring one on the node when needed.
func (d *Document) SetAttr(id NodeID, name Name, value string) {
	n := d.n(id)
	for i := range n.attrs {
		if n.attrs[i].Name == name && !n.attrs[i].IsNamespaceDecl() {
			n.attrs[i].Value = value
			return
		}
	}

	prefix := ""
	if name.Space != "" {
		prefix = d.ensureAttrPrefix(id, name.Space, "ns")
	}

	n = d.n(id)
	n.attrs = append(n.attrs, Attr{Name: name, Prefix: prefix, Value: value})
}

// RemoveChildrenFunc detaches every child for which del returns true.
func (d *Document) RemoveChildrenFunc(id NodeID, del func(NodeID) bool) {
	n := d.n(id)
	n.children = slices.DeleteFunc(n.children, func(c NodeID) bool {
		if del(c) {
			d.nodes[c].parent = NoNode
			return true
		}

		return false
	})
}

// Path returns the logical path of the node built from local names,
// e.g. "/Configuration/List/Item".
func (d *Document) Path(id NodeID) string {
	var parts []string
	for cur := id; cur != NoNode; cur = d.n(cur).parent {
		parts = append(parts, d.n(cur).name.Local)
	}

	slices.Reverse(parts)

	return "/" + strings.Join(parts, "/")
}

// Import deep-copies the subtree rooted at srcID of src and appends it as
// the last child of parent. Namespace prefixes are rewritten to the ones
// declared in scope at parent; missing declarations are added to the copy.
func (d *Document) Import(parent NodeID, src *Document, srcID NodeID) NodeID {
	s := *src.n(srcID)

	id := d.add(node{
		name:   s.name,
		prefix: s.prefix,
		text:   s.text,
		parent: parent,
	})
	d.n(parent).children = append(d.n(parent).children, id)

	if s.name.Space != "" {
		if p, ok := d.lookupPrefix(parent, s.name.Space, true); ok {
			d.n(id).prefix = p
		} else {
			d.declare(id, s.prefix, s.name.Space)
		}
	} else if s.prefix == "" {
		if uri, ok := d.lookupDefault(parent); ok && uri != "" {
			d.declare(id, "", "")
		}
	}

	for _, a := range s.attrs {
		if a.IsNamespaceDecl() {
			continue
		}

		attr := a
		if a.Name.Space != "" {
			attr.Prefix = d.ensureAttrPrefix(id, a.Name.Space, a.Prefix)
		}

		d.n(id).attrs = append(d.n(id).attrs, attr)
	}

	for _, c := range s.children {
		d.Import(id, src, c)
	}

	return id
}

// ensureAttrPrefix returns a non-empty prefix bound to uri in scope at id,
// declaring preferred on id when no binding exists.
func (d *Document) ensureAttrPrefix(id NodeID, uri, preferred string) string {
	if p, ok := d.lookupPrefix(id, uri, false); ok {
		return p
	}

	if preferred == "" {
		preferred = "ns"
	}

	d.declare(id, preferred, uri)

	return preferred
}

func (d *Document) declare(id NodeID, prefix, uri string) {
	n := d.n(id)
	n.prefix = prefix

	if prefix == "" {
		n.attrs = append(n.attrs, Attr{Name: Name{Local: xmlnsPrefix}, Value: uri})
		return
	}

	n.attrs = append(n.attrs, Attr{
		Name:   Name{Space: xmlnsPrefix, Local: prefix},
		Prefix: xmlnsPrefix,
		Value:  uri,
	})
}

// lookupPrefix finds the prefix bound to uri in scope at id. The default
// namespace only counts when allowDefault is set.
func (d *Document) lookupPrefix(id NodeID, uri string, allowDefault bool) (string, bool) {
	for cur := id; cur != NoNode; cur = d.n(cur).parent {
		for _, a := range d.n(cur).attrs {
			if !a.IsNamespaceDecl() || a.Value != uri {
				continue
			}

			if a.Prefix == xmlnsPrefix {
				return a.Name.Local, true
			}

			if allowDefault {
				return "", true
			}
		}
	}

	return "", false
}

func (d *Document) lookupDefault(id NodeID) (string, bool) {
	for cur := id; cur != NoNode; cur = d.n(cur).parent {
		for _, a := range d.n(cur).attrs {
			if a.Prefix == "" && a.Name.Local == xmlnsPrefix {
				return a.Value, true
			}
		}
	}

	return "", false
}
