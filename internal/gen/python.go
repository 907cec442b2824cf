package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"mixable/internal/metadata"
	"mixable/internal/scalar"
	"mixable/internal/schema"
)

// PythonBackend emits classes that read a defusedxml ElementTree.
type PythonBackend struct{}

func (PythonBackend) Name() string { return "python" }

func (PythonBackend) Enabled(meta *metadata.Document) bool { return meta.Python.Enabled }

func (b PythonBackend) Generate(model *Model, meta *metadata.Document) (GeneratedFile, error) {
	file := GeneratedFile{Backend: b.Name(), Path: meta.Python.OutputFile}

	var buf bytes.Buffer
	if err := pythonTemplate.Execute(&buf, model); err != nil {
		return file, fmt.Errorf("executing template: %w", err)
	}

	file.Content = buf.Bytes()

	return file, nil
}

// pyExpr builds the expression converting the element src to t. depth
// keeps comprehension variables of nested lists apart.
func pyExpr(t TypeRef, src string, depth int) string {
	var expr string

	switch t.Kind {
	case schema.KindMap:
		expr = fmt.Sprintf("%s(%s)", t.Class, src)
	case schema.KindList:
		v := fmt.Sprintf("x%d", depth)
		expr = fmt.Sprintf("[%s for %s in %s if %s.tag == '%s']", pyExpr(*t.Elem, v, depth+1), v, src, v, t.ItemXMLName)
	default:
		switch t.Scalar {
		case scalar.KindInt:
			expr = fmt.Sprintf("int(%s.text)", src)
		case scalar.KindDouble:
			expr = fmt.Sprintf("float(%s.text)", src)
		case scalar.KindBool:
			expr = fmt.Sprintf("%s.text.strip().lower() == 'true'", src)
		default:
			expr = fmt.Sprintf("(%s.text or '')", src)
		}
	}

	if t.Optional {
		return fmt.Sprintf("(%s if %s is not None else None)", expr, src)
	}

	return expr
}

func pyField(f Field) string {
	return pyExpr(f.Type, fmt.Sprintf("element.find('%s')", f.XMLName), 0)
}

var pythonTemplate = template.Must(template.New("python").
	Funcs(template.FuncMap{"pyField": pyField}).
	Parse(`# Generated by mixable. Do not edit.
from defusedxml.ElementTree import parse
{{range .Classes}}

class {{.Name}}:
    def __init__(self, element):
{{- range .Fields}}
        self.{{.Name}} = {{pyField .}}
{{- else}}
        pass
{{- end}}
{{end}}

def load(path):
    return {{.Root}}(parse(path).getroot())
`))
