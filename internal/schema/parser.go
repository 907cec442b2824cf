package schema

import (
	"fmt"

	"mixable/internal/diagnostic"
	"mixable/internal/xmltree"
)

// Parser builds the schema tree of a base document.
type Parser struct {
	outside  Validator
	template Validator
}

// NewParser returns a parser that applies base-depth attribute rules.
func NewParser() *Parser {
	base := NewValidator(DepthBase)

	return &Parser{
		outside:  base.With(OutsideTemplateRule),
		template: base.With(TemplateMemberRule),
	}
}

// Parse classifies every element of doc and returns the root node. It
// always returns a node so that callers see every problem at once; the
// tree is only usable when diags holds no errors.
func (p *Parser) Parse(doc *xmltree.Document, diags *diagnostic.Diagnostics) Node {
	return p.parse(doc, doc.Root(), false, diags)
}

// Validator returns the validator used for elements outside list templates.
func (p *Parser) Validator() Validator {
	return p.outside
}

func (p *Parser) parse(doc *xmltree.Document, id xmltree.NodeID, inTemplate bool, diags *diagnostic.Diagnostics) Node {
	v := p.outside
	if inTemplate {
		v = p.template
	}

	attrs := v.Validate(doc, id, diags)

	var claimed []classifier

	for _, c := range candidatesFor(attrs) {
		if c.canClassify(doc, id, attrs) {
			claimed = append(claimed, c)
		}
	}

	if len(claimed) == 0 {
		p.unclassifiable(doc, id, attrs, diags)

		return newMap(doc, id)
	}

	// The built-in classifiers never claim the same element; this only
	// fires when the dispatch list holds overlapping classifiers.
	if len(claimed) > 1 {
		diags.AddWarning(CodeAmbiguous, fmt.Sprintf(
			"Multiple classifiers matched the node; treating it as a %s.", claimed[0].kind()), doc.Path(id))
	}

	ctx := &classifyContext{
		doc:        doc,
		diags:      diags,
		validator:  v,
		inTemplate: inTemplate,
		recurse: func(child xmltree.NodeID, childInTemplate bool) Node {
			return p.parse(doc, child, childInTemplate, diags)
		},
	}

	return claimed[0].classify(ctx, id, attrs)
}

func (p *Parser) unclassifiable(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes, diags *diagnostic.Diagnostics) {
	if attrs.HasType {
		diags.AddError(CodeUnclassifiable, fmt.Sprintf(
			"Unable to build a schema for the node with declared type '%s'.", attrs.RawType), doc.Path(id))

		return
	}

	diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     CodeUnclassifiable,
		Message: "Unable to build a schema for the XML. Consider adding the 'Type' attribute " +
			"to describe how the node should be interpreted.",
		Path:        doc.Path(id),
		Suggestions: []string{"List", "Int", "String", "Double", "Bool", "Map"},
	})
}
