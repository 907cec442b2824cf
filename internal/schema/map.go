package schema

import (
	"fmt"
	"slices"
	"strings"

	"mixable/internal/diagnostic"
	"mixable/internal/match"
	"mixable/internal/xmltree"
)

// Map is an ordered, closed set of uniquely named children.
type Map struct {
	element

	keys     []xmltree.Name
	children map[xmltree.Name]Node
}

func newMap(doc *xmltree.Document, id xmltree.NodeID) *Map {
	return &Map{
		element:  element{doc: doc, ref: id},
		children: make(map[xmltree.Name]Node),
	}
}

func (m *Map) Kind() NodeKind { return KindMap }

// Keys returns the child names in declaration order.
func (m *Map) Keys() []xmltree.Name { return slices.Clone(m.keys) }

// Child looks a child up by name.
func (m *Map) Child(name xmltree.Name) (Node, bool) {
	n, ok := m.children[name]

	return n, ok
}

func (m *Map) Len() int { return len(m.keys) }

func (m *Map) addChild(child Node, diags *diagnostic.Diagnostics) {
	name := child.Name()
	if _, dup := m.children[name]; dup {
		diags.AddError(CodeDuplicateKey, "Duplicate tag detected in map element", child.Path())

		return
	}

	m.keys = append(m.keys, name)
	m.children[name] = child
}

func (m *Map) localKeys() []string {
	out := make([]string, len(m.keys))
	for i, k := range m.keys {
		out[i] = k.Local
	}

	return out
}

func (m *Map) MatchesSchema(
	doc *xmltree.Document,
	id xmltree.NodeID,
	kind MatchKind,
	v Validator,
	diags *diagnostic.Diagnostics,
) bool {
	v.Validate(doc, id, diags)

	ok := true
	present := make(map[xmltree.Name]xmltree.NodeID)

	for _, c := range structuralChildren(doc, id) {
		name := doc.Name(c)
		if _, dup := present[name]; dup {
			diags.AddError(CodeDuplicateKey, "Duplicate tag detected in map element", doc.Path(c))

			ok = false

			continue
		}

		present[name] = c

		child, found := m.children[name]
		if !found {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        CodeUnknownKey,
				Message:     "Merged schema contains key not present in base schema. Merging may not add new keys.",
				Path:        doc.Path(c),
				Suggestions: match.Suggest(name.Local, m.localKeys()),
			})

			ok = false

			continue
		}

		ok = child.MatchesSchema(doc, c, kind, v, diags) && ok
	}

	if kind != MatchStrict {
		return ok
	}

	var missing []string

	for _, k := range m.keys {
		if _, found := present[k]; found || m.children[k].Modifier() == ModifierOptional {
			continue
		}

		missing = append(missing, k.Local)
	}

	if len(missing) > 0 {
		diags.AddError(CodeMissingKeys, fmt.Sprintf(
			"Schema mismatch. Missing required children: %s", strings.Join(missing, ",")), doc.Path(id))

		ok = false
	}

	return ok
}

func (m *Map) MergeWith(doc *xmltree.Document, id xmltree.NodeID, depth int, v Validator, diags *diagnostic.Diagnostics) {
	if attrs := v.Validate(doc, id, diags); attrs.HasModifier {
		diags.AddError(CodeAttributePolicy,
			"Map elements in override schemas may not specify the 'Flags' attribute.", doc.Path(id))
	}

	for _, c := range structuralChildren(doc, id) {
		if child, ok := m.children[doc.Name(c)]; ok {
			child.MergeWith(doc, c, depth, v, diags)
		}
	}
}
