package schema

import (
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Description is a serializable summary of a schema tree.
type Description struct {
	Name     string         `json:"name" yaml:"name"`
	Path     string         `json:"path" yaml:"path"`
	Kind     string         `json:"kind" yaml:"kind"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Modifier string         `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Value    string         `json:"value,omitempty" yaml:"value,omitempty"`
	Template *Description   `json:"template,omitempty" yaml:"template,omitempty"`
	Items    int            `json:"items,omitempty" yaml:"items,omitempty"`
	Children []*Description `json:"children,omitempty" yaml:"children,omitempty"`
}

// Describe summarizes the tree rooted at n.
func Describe(n Node) *Description {
	return Accept[*Description](n, describer{})
}

type describer struct{}

func header(n Node) *Description {
	d := &Description{Name: n.Name().Local, Path: n.Path(), Kind: n.Kind().String()}
	if n.Modifier() != ModifierNone {
		d.Modifier = n.Modifier().String()
	}

	return d
}

func (describer) VisitScalar(s *Scalar) *Description {
	d := header(s)
	d.Type = s.kind.String()
	d.Value = s.Value()

	return d
}

func (dv describer) VisitList(l *List) *Description {
	d := header(l)
	d.Template = Accept[*Description](l.template, dv)
	d.Items = len(l.Items())

	return d
}

func (dv describer) VisitMap(m *Map) *Description {
	d := header(m)
	for _, k := range m.keys {
		d.Children = append(d.Children, Accept[*Description](m.children[k], dv))
	}

	return d
}

// WriteYAML encodes d as YAML.
func (d *Description) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(d); err != nil {
		return err
	}

	return enc.Close()
}

// WriteJSON encodes d as indented JSON.
func (d *Description) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}
