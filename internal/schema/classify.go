package schema

import (
	"fmt"

	"mixable/internal/common"
	"mixable/internal/diagnostic"
	"mixable/internal/scalar"
	"mixable/internal/xmltree"
)

// classifyContext carries what a classifier needs to build one node.
type classifyContext struct {
	doc        *xmltree.Document
	diags      *diagnostic.Diagnostics
	validator  Validator
	inTemplate bool
	recurse    func(id xmltree.NodeID, inTemplate bool) Node
}

// classifier decides whether it can build a node for an element and builds it.
type classifier interface {
	kind() NodeKind
	canClassify(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes) bool
	classify(ctx *classifyContext, id xmltree.NodeID, attrs Attributes) Node
}

// classifiers in dispatch order. The first one to claim an element wins.
var classifiers = []classifier{scalarClassifier{}, listClassifier{}, mapClassifier{}}

// candidatesFor narrows the dispatch list to what a declared type allows.
func candidatesFor(attrs Attributes) []classifier {
	if !attrs.HasType {
		return classifiers
	}

	if _, ok := attrs.ScalarKind(); ok {
		return []classifier{scalarClassifier{}}
	}

	switch attrs.Type {
	case TypeList:
		return []classifier{listClassifier{}}
	case TypeMap:
		return []classifier{mapClassifier{}}
	default:
		return nil
	}
}

type scalarClassifier struct{}

func (scalarClassifier) kind() NodeKind { return KindScalar }

func (scalarClassifier) canClassify(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes) bool {
	if attrs.HasType {
		if _, ok := attrs.ScalarKind(); !ok {
			return false
		}
	}

	return !doc.HasChildren(id)
}

func (scalarClassifier) classify(ctx *classifyContext, id xmltree.NodeID, attrs Attributes) Node {
	text := ctx.doc.Text(id)

	kind, ok := attrs.ScalarKind()
	if !ok {
		kind = scalar.Infer(text)
	}

	lenient := attrs.Modifier == ModifierAbstract || attrs.Modifier == ModifierOptional
	if !lenient && !scalar.CanParse(kind, text) {
		ctx.diags.AddError(CodeScalarValue, fmt.Sprintf("Unable to parse '%s' as a '%s'.", text, kind), ctx.doc.Path(id))
	}

	return &Scalar{
		element: element{doc: ctx.doc, ref: id, modifier: attrs.Modifier},
		kind:    kind,
	}
}

type listClassifier struct{}

func (listClassifier) kind() NodeKind { return KindList }

func (listClassifier) canClassify(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes) bool {
	if attrs.Type == TypeList || len(doc.ChildrenNamed(id, ListTemplateTag)) > 0 {
		return true
	}

	kids := structuralChildren(doc, id)
	if !common.IsMultiple(kids) {
		return false
	}

	first := doc.Name(kids[0])
	for _, k := range kids[1:] {
		if doc.Name(k) != first {
			return false
		}
	}

	return true
}

func (listClassifier) classify(ctx *classifyContext, id xmltree.NodeID, attrs Attributes) Node {
	l := &List{element: element{doc: ctx.doc, ref: id, modifier: attrs.Modifier}}

	if tmpl := listTemplate(ctx.doc, id, ctx.diags); tmpl != xmltree.NoNode {
		l.template = ctx.recurse(tmpl, true)
	} else {
		ctx.diags.AddError(CodeListTemplate,
			"Couldn't determine type of list item. Lists must include at least one representative "+
				"node or a ListItemTemplate element.", ctx.doc.Path(id))

		l.template = newMap(ctx.doc, id)
	}

	l.MatchesSchema(ctx.doc, id, MatchStrict, ctx.validator, ctx.diags)

	return l
}

// listTemplate finds the element describing a list's items: the single
// child of a ListItemTemplate marker, or else the first item.
func listTemplate(doc *xmltree.Document, id xmltree.NodeID, diags *diagnostic.Diagnostics) xmltree.NodeID {
	markers := doc.ChildrenNamed(id, ListTemplateTag)
	if common.IsEmpty(markers) {
		if first, ok := common.First(structuralChildren(doc, id)); ok {
			return first
		}

		return xmltree.NoNode
	}

	if common.IsMultiple(markers) {
		diags.AddError(CodeListTemplate, "Lists may only have a single template node.", doc.Path(id))
	}

	kids := structuralChildren(doc, markers[0])
	if !common.IsSingle(kids) {
		diags.AddError(CodeListTemplate, "List templates must have exactly one child element.", doc.Path(markers[0]))
	}

	if first, ok := common.First(kids); ok {
		return first
	}

	return xmltree.NoNode
}

type mapClassifier struct{}

func (mapClassifier) kind() NodeKind { return KindMap }

// canClassify declines elements carrying a list template marker so that a
// list with a single item is not reported as ambiguous.
func (mapClassifier) canClassify(doc *xmltree.Document, id xmltree.NodeID, attrs Attributes) bool {
	if attrs.Type == TypeMap {
		return true
	}

	if len(doc.ChildrenNamed(id, ListTemplateTag)) > 0 {
		return false
	}

	kids := structuralChildren(doc, id)
	if common.IsEmpty(kids) {
		return false
	}

	seen := make(map[xmltree.Name]struct{}, len(kids))
	for _, k := range kids {
		name := doc.Name(k)
		if _, dup := seen[name]; dup {
			return false
		}

		seen[name] = struct{}{}
	}

	return true
}

func (mapClassifier) classify(ctx *classifyContext, id xmltree.NodeID, attrs Attributes) Node {
	m := newMap(ctx.doc, id)

	if attrs.HasModifier && attrs.Modifier != ModifierNone {
		ctx.diags.AddError(CodeAttributePolicy, fmt.Sprintf(
			"The Flags attribute value '%s' is not valid on Map nodes.", attrs.Modifier), ctx.doc.Path(id))
	}

	for _, c := range structuralChildren(ctx.doc, id) {
		m.addChild(ctx.recurse(c, ctx.inTemplate), ctx.diags)
	}

	return m
}
