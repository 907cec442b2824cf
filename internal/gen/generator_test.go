package gen

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixable/internal/diagnostic"
	"mixable/internal/metadata"
	"mixable/internal/scalar"
	"mixable/internal/schema"
	"mixable/internal/xmltree"
)

const settings = `<Configuration xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata />
    <A>4</A>
    <Name>hello</Name>
    <List>
        <Item>1</Item>
        <Item>2</Item>
    </List>
    <Items>
        <mx:ListItemTemplate>
            <Item>
                <Key>k</Key>
                <C mx:Flags="Optional">2</C>
            </Item>
        </mx:ListItemTemplate>
    </Items>
    <Sub>
        <Enabled>true</Enabled>
        <Ratio>0.5</Ratio>
    </Sub>
</Configuration>`

func parseSchema(t *testing.T, xml string) schema.Node {
	t.Helper()

	doc, err := xmltree.ParseString(xml)
	require.NoError(t, err)

	diags := &diagnostic.Diagnostics{}
	root := schema.NewParser().Parse(doc, diags)
	require.True(t, diags.IsValid(), "errors: %v", diags.Errors)

	return root
}

func enabled(cs, py, goOn bool) *metadata.Document {
	return &metadata.Document{
		CSharp: metadata.CSharp{Enabled: cs, NamespaceName: metadata.DefaultCSharpNamespace, OutputFile: "/out/Settings.cs"},
		Python: metadata.Python{Enabled: py, OutputFile: "/out/settings.py"},
		Go:     metadata.Go{Enabled: goOn, PackageName: "settings", OutputFile: "/out/settings.go"},
	}
}

func generateOne(t *testing.T, b Backend, xml string) string {
	t.Helper()

	files, err := Generate(parseSchema(t, xml), enabled(true, true, true), []Backend{b})
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func TestBuildModel(t *testing.T) {
	model, err := BuildModel(parseSchema(t, settings))
	require.NoError(t, err)

	assert.Equal(t, "Configuration", model.Root)
	assert.Equal(t, "Configuration", model.RootXML)

	var names []string
	for _, c := range model.Classes {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"Configuration_Items_Item", "Configuration_Sub", "Configuration"}, names)

	root := model.Classes[2]
	require.Len(t, root.Fields, 5)
	assert.Equal(t, TypeRef{Kind: schema.KindScalar, Scalar: scalar.KindInt}, root.Fields[0].Type)
	assert.Equal(t, "Item", root.Fields[2].Type.ItemXMLName)
	assert.Equal(t, "Configuration_Items_Item", root.Fields[3].Type.Elem.Class)

	item := model.Classes[0]
	assert.Equal(t, "/Configuration/Items/Item", item.Path)
	assert.True(t, item.Fields[1].Type.Optional)
}

func TestBuildModel_Errors(t *testing.T) {
	_, err := BuildModel(parseSchema(t, `<Root>5</Root>`))
	assert.ErrorIs(t, err, ErrRootNotMap)

	_, err = BuildModel(parseSchema(t, `<R>
    <A_B><C><X>1</X></C></A_B>
    <A><B_C><X>1</X></B_C></A>
</R>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R_A_B_C")
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"Name":     "Name",
		"my-key":   "my_key",
		"a.b":      "a_b",
		"1st":      "_1st",
		"Größe":    "Größe",
		"under_sc": "under_sc",
	}

	for in, want := range tests {
		assert.Equal(t, want, identifier(in), in)
	}
}

func TestCSharpBackend(t *testing.T) {
	out := generateOne(t, CSharpBackend{}, settings)

	assert.Contains(t, out, "namespace Mixable.GeneratedCode")
	assert.Contains(t, out, `[XmlRoot(ElementName = "Configuration")]`)
	assert.Contains(t, out, "public partial class Configuration_Sub")
	assert.Contains(t, out, "public int A { get; set; }")
	assert.Contains(t, out, `[XmlArrayItem(ElementName = "Item")]`)
	assert.Contains(t, out, "public List<int> List { get; set; }")
	assert.Contains(t, out, "public List<Configuration_Items_Item> Items { get; set; }")
	assert.Contains(t, out, "public int? C { get; set; }")
	assert.Contains(t, out, "public double Ratio { get; set; }")
	assert.Contains(t, out, `case "Enabled": child = this.Enabled; return true;`)
}

func TestPythonBackend(t *testing.T) {
	out := generateOne(t, PythonBackend{}, settings)

	assert.Contains(t, out, "from defusedxml.ElementTree import parse")
	assert.Contains(t, out, "class Configuration_Sub:\n    def __init__(self, element):\n")
	assert.Contains(t, out, "self.A = int(element.find('A').text)")
	assert.Contains(t, out, "self.Name = (element.find('Name').text or '')")
	assert.Contains(t, out, "self.List = [int(x0.text) for x0 in element.find('List') if x0.tag == 'Item']")
	assert.Contains(t, out, "self.C = (int(element.find('C').text) if element.find('C') is not None else None)")
	assert.Contains(t, out, "self.Enabled = element.find('Enabled').text.strip().lower() == 'true'")
	assert.Contains(t, out, "def load(path):\n    return Configuration(parse(path).getroot())\n")
}

func TestPythonBackend_NestedLists(t *testing.T) {
	out := generateOne(t, PythonBackend{}, `<R><M><Row><C>1</C><C>2</C></Row><Row><C>3</C><C>4</C></Row></M></R>`)

	assert.Contains(t, out,
		"self.M = [[int(x1.text) for x1 in x0 if x1.tag == 'C'] for x0 in element.find('M') if x0.tag == 'Row']")
}

func TestGoBackend(t *testing.T) {
	out := generateOne(t, GoBackend{}, settings)

	assert.Contains(t, out, "// Code generated by mixable. DO NOT EDIT.")
	assert.Contains(t, out, "package settings")
	assert.Regexp(t, `XMLName\s+xml\.Name\s+`+"`"+`xml:"Configuration"`+"`", out)
	assert.Regexp(t, `List\s+\[\]int32\s+`+"`"+`xml:"List>Item"`+"`", out)
	assert.Regexp(t, `Items\s+\[\]Configuration_Items_Item\s+`+"`"+`xml:"Items>Item"`+"`", out)
	assert.Regexp(t, `C\s+\*int32\s+`+"`"+`xml:"C"`+"`", out)
	assert.Contains(t, out, "func Load(path string) (*Configuration, error) {")
}

func TestNestedListsRejected(t *testing.T) {
	root := parseSchema(t, `<R><M><Row><C>1</C><C>2</C></Row><Row><C>3</C><C>4</C></Row></M></R>`)

	for _, b := range []Backend{CSharpBackend{}, GoBackend{}} {
		_, err := Generate(root, enabled(true, true, true), []Backend{b})
		require.Error(t, err, b.Name())
		assert.Contains(t, err.Error(), "nested lists are not supported")
	}
}

func TestGoBackend_FormatError(t *testing.T) {
	meta := enabled(false, false, true)
	meta.Go.PackageName = "1bad"

	files, err := Generate(parseSchema(t, settings), meta, DefaultBackends())

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, files)
	assert.Contains(t, string(fe.File.Content), "package 1bad")
	assert.Equal(t, "/out/settings.go", fe.File.Path)
}

func TestGenerate_OnlyEnabled(t *testing.T) {
	root := parseSchema(t, settings)

	files, err := Generate(root, enabled(false, false, false), DefaultBackends())
	require.NoError(t, err)
	assert.Nil(t, files)

	files, err = Generate(root, enabled(true, false, true), DefaultBackends())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "csharp", files[0].Backend)
	assert.Equal(t, "go", files[1].Backend)
}

func TestWriteFiles(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := WriteFiles(fs, []GeneratedFile{
		{Backend: "go", Path: "/out/nested/settings.go", Content: []byte("package settings\n")},
		{Backend: "python", Content: []byte("skipped")},
	})
	require.NoError(t, err)

	got, err := afero.ReadFile(fs, "/out/nested/settings.go")
	require.NoError(t, err)
	assert.Equal(t, "package settings\n", string(got))

	require.NoError(t, WriteUnformatted(fs, GeneratedFile{Path: "/out/settings.go", Content: []byte("raw")}))

	exists, err := afero.Exists(fs, "/out/settings.unformatted.go")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, WriteUnformatted(fs, GeneratedFile{}))
}
