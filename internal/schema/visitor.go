package schema

// Visitor dispatches on the node variant.
type Visitor[T any] interface {
	VisitScalar(s *Scalar) T
	VisitList(l *List) T
	VisitMap(m *Map) T
}

// Accept calls the Visitor method matching n's variant.
func Accept[T any](n Node, v Visitor[T]) T {
	switch n := n.(type) {
	case *Scalar:
		return v.VisitScalar(n)
	case *List:
		return v.VisitList(n)
	case *Map:
		return v.VisitMap(n)
	default:
		panic("schema: unknown node type")
	}
}

// Walk visits n and then, if fn returns true, its map children in
// declaration order. List templates are not descended into.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}

	m, ok := n.(*Map)
	if !ok {
		return
	}

	for _, k := range m.keys {
		Walk(m.children[k], fn)
	}
}
