package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/xmltree"
)

// Merge checks the proposed document against root and, when it fits,
// merges it into root's canonical document. depth is the proposed
// document's distance from the leaf: at depth 0 the merge is final and
// no Abstract node may remain afterwards. It reports whether no new
// errors were recorded.
func Merge(root Node, doc *xmltree.Document, depth int, v Validator, diags *diagnostic.Diagnostics) bool {
	before := diags.ErrorCount()
	id := doc.Root()

	if got, want := doc.Name(id), root.Name(); got != want {
		diags.AddError(CodeTagMismatch, fmt.Sprintf(
			"Expected tag name: '%s'. Got: '%s'.", want.Local, got.Local), doc.Path(id))

		return false
	}

	if !root.MatchesSchema(doc, id, MatchSubset, v, diags) || diags.ErrorCount() > before {
		return false
	}

	root.MergeWith(doc, id, depth, v, diags)

	if depth == 0 {
		for _, n := range UnresolvedAbstract(root) {
			diags.AddError(CodeUnresolvedAbstract,
				"Abstract nodes are not permitted to remain after the final merge.", n.Path())
		}
	}

	return diags.ErrorCount() == before
}

// Validate re-checks the canonical document of root against root itself,
// requiring every non-optional key to be present.
func Validate(root Node, diags *diagnostic.Diagnostics) bool {
	before := diags.ErrorCount()
	doc := root.Document()

	root.MatchesSchema(doc, root.Ref(), MatchStrict, NewParser().Validator(), diags)

	return diags.ErrorCount() == before
}

// UnresolvedAbstract lists the nodes still marked Abstract, in document
// order. List templates are not searched.
func UnresolvedAbstract(root Node) []Node {
	var out []Node

	Walk(root, func(n Node) bool {
		if n.Modifier() == ModifierAbstract {
			out = append(out, n)
		}

		return n.Kind() == KindMap
	})

	return out
}
