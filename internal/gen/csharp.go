package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"mixable/internal/metadata"
	"mixable/internal/scalar"
	"mixable/internal/schema"
)

// CSharpBackend emits XmlSerializer-compatible partial classes.
type CSharpBackend struct{}

func (CSharpBackend) Name() string { return "csharp" }

func (CSharpBackend) Enabled(meta *metadata.Document) bool { return meta.CSharp.Enabled }

func (b CSharpBackend) Generate(model *Model, meta *metadata.Document) (GeneratedFile, error) {
	file := GeneratedFile{Backend: b.Name(), Path: meta.CSharp.OutputFile}

	if err := checkNoNestedLists(model, b.Name()); err != nil {
		return file, err
	}

	data := struct {
		*Model
		Namespace string
	}{Model: model, Namespace: meta.CSharp.NamespaceName}

	var buf bytes.Buffer
	if err := csharpTemplate.Execute(&buf, data); err != nil {
		return file, fmt.Errorf("executing template: %w", err)
	}

	file.Content = buf.Bytes()

	return file, nil
}

func csType(t TypeRef) string {
	switch t.Kind {
	case schema.KindList:
		return "List<" + csType(*t.Elem) + ">"
	case schema.KindMap:
		return t.Class
	}

	var name string

	switch t.Scalar {
	case scalar.KindBool:
		name = "bool"
	case scalar.KindInt:
		name = "int"
	case scalar.KindDouble:
		name = "double"
	default:
		return "string"
	}

	if t.Optional {
		name += "?"
	}

	return name
}

func isList(t TypeRef) bool { return t.Kind == schema.KindList }

var csharpTemplate = template.Must(template.New("csharp").
	Funcs(template.FuncMap{"csType": csType, "isList": isList}).
	Parse(`// <auto-generated>
//     Generated by mixable. Changes to this file will be lost.
// </auto-generated>
namespace {{.Namespace}}
{
    using System.Collections.Generic;
    using System.Xml.Serialization;
{{range .Classes}}
{{- if eq .Name $.Root}}
    [XmlRoot(ElementName = "{{.XMLName}}")]
{{- end}}
    public partial class {{.Name}}
    {
{{- range .Fields}}
{{- if isList .Type}}
        [XmlArray(ElementName = "{{.XMLName}}")]
        [XmlArrayItem(ElementName = "{{.Type.ItemXMLName}}")]
{{- else}}
        [XmlElement(ElementName = "{{.XMLName}}")]
{{- end}}
        public {{csType .Type}} {{.Name}} { get; set; }
{{end}}
        public bool TryGetChild(string name, out object child)
        {
            switch (name)
            {
{{- range .Fields}}
                case "{{.XMLName}}": child = this.{{.Name}}; return true;
{{- end}}
            }

            child = null;
            return false;
        }

        public object this[string name]
        {
            get
            {
                object child;
                if (this.TryGetChild(name, out child))
                {
                    return child;
                }

                throw new KeyNotFoundException(name);
            }
        }
    }
{{end}}
}
`))
