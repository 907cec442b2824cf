package gen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"mixable/internal/metadata"
	"mixable/internal/scalar"
	"mixable/internal/schema"
)

// GoBackend emits structs with encoding/xml tags and a Load function.
type GoBackend struct{}

func (GoBackend) Name() string { return "go" }

func (GoBackend) Enabled(meta *metadata.Document) bool { return meta.Go.Enabled }

func (b GoBackend) Generate(model *Model, meta *metadata.Document) (GeneratedFile, error) {
	file := GeneratedFile{Backend: b.Name(), Path: meta.Go.OutputFile}

	if err := checkNoNestedLists(model, b.Name()); err != nil {
		return file, err
	}

	data := struct {
		*Model
		Package string
	}{Model: model, Package: meta.Go.PackageName}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, data); err != nil {
		return file, fmt.Errorf("executing template: %w", err)
	}

	filename := "config.go"
	if file.Path != "" {
		filename = filepath.Base(file.Path)
	}

	formatted, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		file.Content = buf.Bytes()

		return file, &FormatError{File: file, Err: err}
	}

	file.Content = formatted

	return file, nil
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "X" + name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

func goType(t TypeRef) string {
	var name string

	switch t.Kind {
	case schema.KindList:
		return "[]" + goType(*t.Elem)
	case schema.KindMap:
		name = t.Class
	default:
		switch t.Scalar {
		case scalar.KindBool:
			name = "bool"
		case scalar.KindInt:
			name = "int32"
		case scalar.KindDouble:
			name = "float64"
		default:
			name = "string"
		}
	}

	if t.Optional {
		return "*" + name
	}

	return name
}

func goTag(f Field) string {
	if f.Type.Kind == schema.KindList {
		return f.XMLName + ">" + f.Type.ItemXMLName
	}

	return f.XMLName
}

var goTemplate = template.Must(template.New("go").
	Funcs(template.FuncMap{"exported": exported, "goType": goType, "goTag": goTag}).
	Parse(`// Code generated by mixable. DO NOT EDIT.

package {{.Package}}

import (
	"encoding/xml"
	"os"
)
{{range .Classes}}
// {{.Name}} is the {{.Path}} element.
type {{.Name}} struct {
{{- if eq .Name $.Root}}
	XMLName xml.Name ` + "`" + `xml:"{{.XMLName}}"` + "`" + `
{{- end}}
{{- range .Fields}}
	{{exported .Name}} {{goType .Type}} ` + "`" + `xml:"{{goTag .}}"` + "`" + `
{{- end}}
}
{{end}}
// Load reads a merged {{.RootXML}} document.
func Load(path string) (*{{.Root}}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out {{.Root}}
	if err := xml.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
`))
