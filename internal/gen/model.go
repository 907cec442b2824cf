package gen

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"mixable/internal/scalar"
	"mixable/internal/schema"
)

// ErrRootNotMap is returned when the schema root is not a map node.
var ErrRootNotMap = errors.New("the root element must be a map to generate code")

// TypeRef is the type of a field.
type TypeRef struct {
	Kind schema.NodeKind
	// Scalar is set for scalar fields.
	Scalar scalar.Kind
	// Class is the class name of map fields.
	Class string
	// Elem and ItemXMLName describe list fields.
	Elem        *TypeRef
	ItemXMLName string
	// Optional marks a template member that may be absent.
	Optional bool
}

// Field is one child of a class.
type Field struct {
	Name    string
	XMLName string
	Type    TypeRef
}

// Class is the generated type of one map node.
type Class struct {
	Name    string
	XMLName string
	Path    string
	Fields  []Field
}

// Model is everything a backend needs. Classes are ordered so that a
// class appears after every class it refers to; the root class is last.
type Model struct {
	Root    string
	RootXML string
	Classes []Class
}

// BuildModel lowers the schema tree rooted at root.
func BuildModel(root schema.Node) (*Model, error) {
	if root.Kind() != schema.KindMap {
		return nil, ErrRootNotMap
	}

	b := &modeler{owners: make(map[string]string)}

	ref := b.visit(root)
	if b.err != nil {
		return nil, b.err
	}

	return &Model{Root: ref.Class, RootXML: root.Name().Local, Classes: b.classes}, nil
}

type modeler struct {
	classes []Class
	owners  map[string]string
	stack   []string
	err     error
}

// visit tracks the element path while descending, so names do not depend
// on where the node currently sits in its document.
func (b *modeler) visit(n schema.Node) TypeRef {
	b.stack = append(b.stack, n.Name().Local)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	return schema.Accept[TypeRef](n, b)
}

func (b *modeler) VisitScalar(s *schema.Scalar) TypeRef {
	return TypeRef{Kind: schema.KindScalar, Scalar: s.ScalarKind(), Optional: s.Modifier() == schema.ModifierOptional}
}

func (b *modeler) VisitList(l *schema.List) TypeRef {
	elem := b.visit(l.Template())
	elem.Optional = false

	return TypeRef{
		Kind:        schema.KindList,
		Elem:        &elem,
		ItemXMLName: l.Template().Name().Local,
		Optional:    l.Modifier() == schema.ModifierOptional,
	}
}

func (b *modeler) VisitMap(m *schema.Map) TypeRef {
	path := "/" + strings.Join(b.stack, "/")
	name := className(path)

	if owner, taken := b.owners[name]; taken && b.err == nil {
		b.err = fmt.Errorf("type name %s is generated for both %s and %s", name, owner, path)
	}

	b.owners[name] = path

	c := Class{Name: name, XMLName: m.Name().Local, Path: path}

	for _, k := range m.Keys() {
		child, _ := m.Child(k)
		c.Fields = append(c.Fields, Field{
			Name:    identifier(k.Local),
			XMLName: k.Local,
			Type:    b.visit(child),
		})
	}

	b.classes = append(b.classes, c)

	return TypeRef{Kind: schema.KindMap, Class: name, Optional: m.Modifier() == schema.ModifierOptional}
}

func className(path string) string {
	return identifier(strings.ReplaceAll(strings.Trim(path, "/"), "/", "_"))
}

// identifier maps an XML name onto a name valid in every target language.
func identifier(name string) string {
	var sb strings.Builder

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}

			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	return sb.String()
}

func hasNestedList(t TypeRef) bool {
	return t.Kind == schema.KindList && t.Elem.Kind == schema.KindList
}

// checkNoNestedLists rejects list-of-list fields for backends whose XML
// binding cannot express them.
func checkNoNestedLists(m *Model, backend string) error {
	for _, c := range m.Classes {
		for _, f := range c.Fields {
			if hasNestedList(f.Type) {
				return fmt.Errorf("%s: %s/%s: nested lists are not supported", backend, c.Path, f.XMLName)
			}
		}
	}

	return nil
}
