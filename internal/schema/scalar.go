package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/scalar"
	"mixable/internal/xmltree"
)

// Scalar is a leaf value of a fixed kind.
type Scalar struct {
	element

	kind scalar.Kind
}

func (s *Scalar) Kind() NodeKind { return KindScalar }

// ScalarKind is the kind every override value must parse as.
func (s *Scalar) ScalarKind() scalar.Kind { return s.kind }

// Value is the current text of the node in the canonical document.
func (s *Scalar) Value() string { return s.doc.Text(s.ref) }

func (s *Scalar) MatchesSchema(
	doc *xmltree.Document,
	id xmltree.NodeID,
	_ MatchKind,
	v Validator,
	diags *diagnostic.Diagnostics,
) bool {
	attrs := v.Validate(doc, id, diags)
	ok := true

	if doc.HasChildren(id) {
		diags.AddError(CodeScalarChildren, "Override schemas may not introduce children to scalar nodes.", doc.Path(id))

		ok = false
	}

	if attrs.Modifier == ModifierAbstract || attrs.Modifier == ModifierOptional {
		return ok
	}

	if text := doc.Text(id); !scalar.CanParse(s.kind, text) {
		diags.AddError(CodeScalarValue, fmt.Sprintf("Failed to parse '%s' as a type of '%s'.", text, s.kind), doc.Path(id))

		ok = false
	}

	return ok
}

func (s *Scalar) MergeWith(doc *xmltree.Document, id xmltree.NodeID, depth int, v Validator, diags *diagnostic.Diagnostics) {
	attrs := v.Validate(doc, id, diags)

	if !s.applyModifier(attrs.Modifier, depth, doc.Path(id), diags) {
		return
	}

	if s.modifier == ModifierAbstract {
		s.doc.SetText(s.ref, "")

		return
	}

	s.doc.SetText(s.ref, doc.Text(id))
}
