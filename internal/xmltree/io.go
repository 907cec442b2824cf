package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("document has no root element")

// indentSpaces is the indentation used when serializing.
const indentSpaces = 2

// Parse reads an XML document.
func Parse(data []byte) (*Document, error) {
	src := etree.NewDocument()
	if err := src.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := src.Root()
	if root == nil {
		return nil, ErrNoRoot
	}

	d := &Document{}
	d.root = d.load(root, NoNode)

	return d, nil
}

// ParseString reads an XML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

func (d *Document) load(el *etree.Element, parent NodeID) NodeID {
	n := node{
		name:   Name{Space: el.NamespaceURI(), Local: el.Tag},
		prefix: el.Space,
		text:   el.Text(),
		parent: parent,
	}

	for i := range el.Attr {
		a := &el.Attr[i]

		attr := Attr{Prefix: a.Space, Value: a.Value}
		switch {
		case a.Space == xmlnsPrefix:
			attr.Name = Name{Space: xmlnsPrefix, Local: a.Key}
		case a.Space == "":
			attr.Name = Name{Local: a.Key}
		default:
			attr.Name = Name{Space: a.NamespaceURI(), Local: a.Key}
		}

		n.attrs = append(n.attrs, attr)
	}

	id := d.add(n)

	for _, child := range el.ChildElements() {
		cid := d.load(child, id)
		d.n(id).children = append(d.n(id).children, cid)
	}

	return id
}

// WriteTo serializes the reachable tree, indented, with an XML declaration.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	d.store(&out.Element, d.root)
	out.Indent(indentSpaces)

	return out.WriteTo(w)
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing XML: %w", err)
	}

	return buf.Bytes(), nil
}

// String serializes the document, returning an empty string on failure.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return ""
	}

	return string(b)
}

func (d *Document) store(parent *etree.Element, id NodeID) {
	n := d.n(id)

	el := parent.CreateElement(qualify(n.prefix, n.name.Local))
	for _, a := range n.attrs {
		el.CreateAttr(qualify(a.Prefix, a.Name.Local), a.Value)
	}

	if len(n.children) == 0 {
		if n.text != "" {
			el.SetText(n.text)
		}

		return
	}

	for _, c := range n.children {
		d.store(el, c)
	}
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}

	return prefix + ":" + local
}
