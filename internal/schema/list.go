package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/xmltree"
)

// List is a homogeneous sequence whose items all match a template.
type List struct {
	element

	template Node
}

func (l *List) Kind() NodeKind { return KindList }

// Template is the schema every item must strictly match.
func (l *List) Template() Node { return l.template }

// Items returns the current items of the list in the canonical document.
func (l *List) Items() []xmltree.NodeID {
	return structuralChildren(l.doc, l.ref)
}

// MatchesSchema checks every item of the proposed list strictly against
// the template, whatever kind the caller asked for. Items are checked with
// ListItemRule in place of the caller's context rules.
func (l *List) MatchesSchema(
	doc *xmltree.Document,
	id xmltree.NodeID,
	_ MatchKind,
	v Validator,
	diags *diagnostic.Diagnostics,
) bool {
	v.Validate(doc, id, diags)

	ok := true
	want := l.template.Name()
	items := v.Only(ListItemRule)

	for _, c := range structuralChildren(doc, id) {
		if got := doc.Name(c); got != want {
			diags.AddError(CodeTagMismatch, fmt.Sprintf(
				"Expected tag name: '%s'. Got: '%s'.", want.Local, got.Local), doc.Path(c))

			ok = false

			continue
		}

		ok = l.template.MatchesSchema(doc, c, MatchStrict, items, diags) && ok
	}

	return ok
}

func (l *List) MergeWith(doc *xmltree.Document, id xmltree.NodeID, depth int, v Validator, diags *diagnostic.Diagnostics) {
	attrs := v.Validate(doc, id, diags)

	if !l.applyModifier(attrs.Modifier, depth, doc.Path(id), diags) {
		return
	}

	if attrs.ListMerge == ListMergeReplace || l.modifier == ModifierAbstract {
		l.doc.RemoveChildrenFunc(l.ref, func(c xmltree.NodeID) bool {
			return l.doc.Name(c).Space != Namespace
		})
	}

	if l.modifier == ModifierAbstract {
		return
	}

	for _, c := range structuralChildren(doc, id) {
		l.doc.Import(l.ref, doc, c)
	}
}
