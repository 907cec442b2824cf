package schema

import (
	"fmt"
	"strings"

	"mixable/internal/common"
	"mixable/internal/scalar"
)

// Modifier is the lifecycle flag of a schema node.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierOptional
	ModifierAbstract
	ModifierFinal
)

var modifierNames = [...]string{"None", "Optional", "Abstract", "Final"}

// String returns the attribute spelling of the modifier.
func (m Modifier) String() string {
	if m < 0 || int(m) >= len(modifierNames) {
		return common.UnknownStr
	}

	return modifierNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// CanTransition reports whether a node carrying from may be set to to.
// None may become Abstract; Abstract may become anything; Final is terminal.
func (m Modifier) CanTransition(to Modifier) bool {
	switch {
	case m == to:
		return true
	case m == ModifierFinal:
		return false
	case m == ModifierAbstract:
		return true
	case m == ModifierNone:
		return to == ModifierAbstract
	default:
		return false
	}
}

// ListMergePolicy controls how override list items combine with base items.
type ListMergePolicy int

const (
	ListMergeConcatenate ListMergePolicy = iota
	ListMergeReplace
)

var listMergeNames = [...]string{"Concatenate", "Replace"}

func (p ListMergePolicy) String() string {
	if p < 0 || int(p) >= len(listMergeNames) {
		return common.UnknownStr
	}

	return listMergeNames[p]
}

// WellKnownType is an explicitly declared structural type. Declared scalar
// types are resolved by the scalar registry instead.
type WellKnownType int

const (
	_ WellKnownType = iota
	TypeList
	TypeMap
)

var wellKnownNames = [...]string{"", "List", "Map"}

func (t WellKnownType) String() string {
	if t <= 0 || int(t) >= len(wellKnownNames) {
		return common.UnknownStr
	}

	return wellKnownNames[t]
}

// typeNames lists every accepted Type value, scalar kinds first.
func typeNames() []string {
	var names []string

	for _, k := range scalar.Kinds() {
		n := k.String()
		names = append(names, strings.ToUpper(n[:1])+n[1:])
	}

	return append(names, wellKnownNames[1:]...)
}

// parseEnum matches value case-insensitively against names.
func parseEnum(value string, names []string) (int, bool) {
	value = strings.TrimSpace(value)

	for i, n := range names {
		if n != "" && strings.EqualFold(n, value) {
			return i, true
		}
	}

	return 0, false
}

func validValues(names []string) string {
	var out []string

	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}

	return strings.Join(out, ",")
}

func invalidValueMessage(value, what string, names []string) string {
	return fmt.Sprintf("Unable to parse '%s' as a '%s' value. Valid values are: %s.", value, what, validValues(names))
}

// NodeKind identifies the variant of a schema node.
type NodeKind int

const (
	KindScalar NodeKind = iota
	KindList
	KindMap
)

func (k NodeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// MatchKind selects how completely a proposed node must cover the schema.
type MatchKind int

const (
	// MatchSubset permits a partial override.
	MatchSubset MatchKind = iota
	// MatchStrict requires every non-optional key to be present.
	MatchStrict
)
