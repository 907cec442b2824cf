package schema

import "mixable/internal/xmltree"

// Namespace is the XML namespace of every mixable metadata tag and attribute.
const Namespace = "https://github.com/jamescourtney/mixable"

// Reserved tags.
var (
	MetadataTag     = xmltree.Name{Space: Namespace, Local: "Metadata"}
	ListTemplateTag = xmltree.Name{Space: Namespace, Local: "ListItemTemplate"}
)

// Node-level metadata attributes.
var (
	FlagsAttr     = xmltree.Name{Space: Namespace, Local: "Flags"}
	TypeAttr      = xmltree.Name{Space: Namespace, Local: "Type"}
	ListMergeAttr = xmltree.Name{Space: Namespace, Local: "ListMerge"}
)

// Diagnostic codes raised by this package.
const (
	CodeInvalidAttribute   = "invalid_attribute"
	CodeAttributePolicy    = "attribute_policy"
	CodeUnclassifiable     = "unclassifiable"
	CodeAmbiguous          = "ambiguous_classification"
	CodeDuplicateKey       = "duplicate_key"
	CodeUnknownKey         = "unknown_key"
	CodeMissingKeys        = "missing_required_children"
	CodeTagMismatch        = "tag_mismatch"
	CodeListTemplate       = "list_template"
	CodeScalarValue        = "scalar_value"
	CodeScalarChildren     = "scalar_children"
	CodeFinalOverride      = "final_override"
	CodeModifierTransition = "modifier_transition"
	CodeUnresolvedAbstract = "unresolved_abstract"
)

// structuralChildren returns the children of id that are not in the
// metadata namespace.
func structuralChildren(doc *xmltree.Document, id xmltree.NodeID) []xmltree.NodeID {
	var out []xmltree.NodeID

	for _, c := range doc.Children(id) {
		if doc.Name(c).Space != Namespace {
			out = append(out, c)
		}
	}

	return out
}
