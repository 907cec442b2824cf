package schema

import (
	"mixable/internal/diagnostic"
	"mixable/internal/scalar"
	"mixable/internal/xmltree"
)

// Attributes is the metadata declared on a single element. It is
// extracted fresh on every validation and never cached on the tree.
type Attributes struct {
	// RawType is the Type attribute as written.
	RawType string
	HasType bool
	// Scalar is set when the declared type names a scalar kind.
	Scalar scalar.Kind
	// Type is set when the declared type is List or Map.
	Type WellKnownType

	Modifier    Modifier
	HasModifier bool

	ListMerge    ListMergePolicy
	HasListMerge bool
}

// ExtractAttributes reads the mixable attributes of id. Values that do not
// parse are reported and left at their zero value.
func ExtractAttributes(doc *xmltree.Document, id xmltree.NodeID, diags *diagnostic.Diagnostics) Attributes {
	var a Attributes

	path := doc.Path(id)

	if raw, ok := doc.Attr(id, TypeAttr); ok {
		a.RawType, a.HasType = raw, true

		if k, ok := scalar.Resolve(raw); ok {
			a.Scalar = k
		} else if i, ok := parseEnum(raw, wellKnownNames[:]); ok {
			a.Type = WellKnownType(i)
		} else {
			diags.AddError(CodeInvalidAttribute, invalidValueMessage(raw, "Type", typeNames()), path)
		}
	}

	if raw, ok := doc.Attr(id, FlagsAttr); ok {
		a.HasModifier = true

		if i, ok := parseEnum(raw, modifierNames[:]); ok {
			a.Modifier = Modifier(i)
		} else {
			diags.AddError(CodeInvalidAttribute, invalidValueMessage(raw, "Flags", modifierNames[:]), path)
		}
	}

	if raw, ok := doc.Attr(id, ListMergeAttr); ok {
		a.HasListMerge = true

		if i, ok := parseEnum(raw, listMergeNames[:]); ok {
			a.ListMerge = ListMergePolicy(i)
		} else {
			diags.AddError(CodeInvalidAttribute, invalidValueMessage(raw, "ListMergePolicy", listMergeNames[:]), path)
		}
	}

	return a
}

// ScalarKind returns the declared scalar kind, if any.
func (a Attributes) ScalarKind() (scalar.Kind, bool) {
	return a.Scalar, a.Scalar.IsValid()
}
