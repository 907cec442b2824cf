package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/xmltree"
)

// Depth is the position of a document in a base-file chain.
type Depth int

const (
	// DepthBase is the root of the chain, the document that defines the schema.
	DepthBase Depth = iota
	// DepthIntermediate is any override that is itself overridden.
	DepthIntermediate
	// DepthLeaf is the final override, the one a user builds.
	DepthLeaf
)

func (d Depth) String() string {
	switch d {
	case DepthBase:
		return "base"
	case DepthIntermediate:
		return "intermediate"
	case DepthLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// Rule is an additional attribute check layered onto a Validator.
type Rule func(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes, diags *diagnostic.Diagnostics)

// Validator extracts and polices the attributes of an element according to
// the document's depth and any context rules. Validators are values; With
// returns a new one.
type Validator struct {
	depth Depth
	rules []Rule
}

// NewValidator returns the validator for documents at depth.
func NewValidator(depth Depth) Validator {
	return Validator{depth: depth}
}

// ValidatorFor maps a chain position onto a validator: position 0 is the
// leaf, everything further from it is intermediate.
func ValidatorFor(chainDepth int) Validator {
	if chainDepth == 0 {
		return NewValidator(DepthLeaf)
	}

	return NewValidator(DepthIntermediate)
}

// Depth reports the depth the validator enforces.
func (v Validator) Depth() Depth {
	return v.depth
}

// With returns a validator that also runs rules. The receiver is unchanged.
func (v Validator) With(rules ...Rule) Validator {
	combined := make([]Rule, 0, len(v.rules)+len(rules))
	combined = append(combined, v.rules...)
	combined = append(combined, rules...)

	return Validator{depth: v.depth, rules: combined}
}

// Only returns a validator of the same depth that runs just rules, dropping
// the context rules of the receiver.
func (v Validator) Only(rules ...Rule) Validator {
	return Validator{depth: v.depth, rules: append([]Rule(nil), rules...)}
}

// Validate extracts the attributes of id, reporting any that the depth or
// the context rules forbid.
func (v Validator) Validate(doc *xmltree.Document, id xmltree.NodeID, diags *diagnostic.Diagnostics) Attributes {
	attrs := ExtractAttributes(doc, id, diags)
	path := doc.Path(id)

	switch v.depth {
	case DepthBase:
		if attrs.HasListMerge {
			diags.AddError(CodeAttributePolicy, "Base schemas may not have a ListMerge policy defined.", path)
		}
	case DepthIntermediate:
		if attrs.HasType {
			diags.AddError(CodeAttributePolicy, "Derived schemas may not have the Type attribute defined.", path)
		}

		if attrs.Modifier != ModifierNone && attrs.Modifier != ModifierAbstract {
			diags.AddError(CodeAttributePolicy, fmt.Sprintf(
				"Intermediate schemas may not use the Flags attribute to set a node to %s.", attrs.Modifier), path)
		}
	case DepthLeaf:
		if attrs.HasType {
			diags.AddError(CodeAttributePolicy, "Derived schemas may not have the Type attribute defined.", path)
		}

		if attrs.HasModifier {
			diags.AddError(CodeAttributePolicy, "Leaf schemas may not use the Flags attribute.", path)
		}
	}

	for _, rule := range v.rules {
		rule(doc, id, attrs, diags)
	}

	return attrs
}

// TemplateMemberRule forbids Abstract and Final inside list item templates.
func TemplateMemberRule(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes, diags *diagnostic.Diagnostics) {
	if attrs.Modifier == ModifierAbstract || attrs.Modifier == ModifierFinal {
		diags.AddError(CodeAttributePolicy, fmt.Sprintf(
			"The Flags attribute value '%s' is not valid within list item templates.", attrs.Modifier), doc.Path(id))
	}
}

// OutsideTemplateRule forbids Optional outside list item templates.
func OutsideTemplateRule(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes, diags *diagnostic.Diagnostics) {
	if attrs.Modifier == ModifierOptional {
		diags.AddError(CodeAttributePolicy,
			"The Flags attribute value 'Optional' is only valid within list item templates.", doc.Path(id))
	}
}

// ListItemRule forbids Flags and ListMerge on concrete list items and
// their members.
func ListItemRule(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes, diags *diagnostic.Diagnostics) {
	path := doc.Path(id)

	switch {
	case attrs.Modifier == ModifierOptional:
		diags.AddError(CodeAttributePolicy, "List items may not specify the 'Flags' attribute. "+
			"Optional members must be declared inside a ListItemTemplate element.", path)
	case attrs.HasModifier:
		diags.AddError(CodeAttributePolicy, "List items may not specify the 'Flags' attribute.", path)
	}

	if attrs.HasListMerge {
		diags.AddError(CodeAttributePolicy, "List items may not specify the 'ListMerge' attribute.", path)
	}
}
