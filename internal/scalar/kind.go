// Package scalar defines the four built-in scalar kinds and their parse and
// inference rules.
package scalar

import (
	"strconv"
	"strings"

	"mixable/internal/common"
)

type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindBool
	KindInt
	KindDouble
	KindString

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// priority is the inference order. KindString accepts everything, so it must be last.
var priority = [...]Kind{KindBool, KindInt, KindDouble, KindString}

// Kinds returns all scalar kinds in inference priority order.
func Kinds() []Kind {
	return priority[:]
}

// String returns the declared type name of the kind ("bool", "int", ...).
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// Resolve maps a declared type name to a kind. Names are matched
// case-insensitively after trimming.
func Resolve(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, k := range priority {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}

// Infer returns the first kind, in priority order, that can parse text.
// It never fails: every string parses as KindString.
func Infer(text string) Kind {
	for _, k := range priority {
		if CanParse(k, text) {
			return k
		}
	}

	return KindString
}

// CanParse reports whether text is a valid literal of kind k.
func CanParse(k Kind, text string) bool {
	switch k {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "false":
			return true
		}

		return false
	case KindInt:
		_, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		return err == nil
	case KindDouble:
		_, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		return err == nil
	case KindString:
		return true
	default:
		return false
	}
}
