package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/xmltree"
)

// Node is a schema node bound to an element of the canonical document.
//
// MatchesSchema checks a proposed element against the node without changing
// anything. MergeWith writes the proposed element into the canonical
// document; it must only be called after MatchesSchema succeeded.
type Node interface {
	Kind() NodeKind
	Name() xmltree.Name
	Path() string
	Ref() xmltree.NodeID
	Document() *xmltree.Document
	Modifier() Modifier

	MatchesSchema(doc *xmltree.Document, id xmltree.NodeID, kind MatchKind, v Validator, diags *diagnostic.Diagnostics) bool
	MergeWith(doc *xmltree.Document, id xmltree.NodeID, depth int, v Validator, diags *diagnostic.Diagnostics)
}

// element is the state common to every node variant.
type element struct {
	doc      *xmltree.Document
	ref      xmltree.NodeID
	modifier Modifier
}

func (e *element) Name() xmltree.Name          { return e.doc.Name(e.ref) }
func (e *element) Path() string                { return e.doc.Path(e.ref) }
func (e *element) Ref() xmltree.NodeID         { return e.ref }
func (e *element) Document() *xmltree.Document { return e.doc }
func (e *element) Modifier() Modifier          { return e.modifier }

// applyModifier moves the node to the proposed modifier and mirrors the
// change into the canonical document. It reports false when the proposed
// element may not be merged at all.
func (e *element) applyModifier(proposed Modifier, depth int, path string, diags *diagnostic.Diagnostics) bool {
	if e.modifier == ModifierFinal {
		diags.AddError(CodeFinalOverride, "Nodes marked as 'Final' may not be overridden.", path)

		return false
	}

	if proposed == ModifierAbstract && depth == 0 {
		diags.AddError(CodeUnresolvedAbstract, "Abstract nodes are not permitted to remain after the final merge.", path)

		return false
	}

	if !e.modifier.CanTransition(proposed) {
		diags.AddError(CodeModifierTransition, fmt.Sprintf(
			"Nodes marked as '%s' may not be changed to '%s'.", e.modifier, proposed), path)

		return false
	}

	if e.modifier != proposed {
		e.modifier = proposed
		e.doc.SetAttr(e.ref, FlagsAttr, proposed.String())
	}

	return true
}
