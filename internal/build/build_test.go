package build

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mixable/internal/gen"
)

const (
	base = `<?xml version="1.0"?>
<Settings xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata>
        <MergedXmlFile>out/base.xml</MergedXmlFile>
        <Go>
            <Enabled>true</Enabled>
            <PackageName>settings</PackageName>
            <OutputFile>out/settings.go</OutputFile>
        </Go>
        <Python>
            <Enabled>true</Enabled>
            <OutputFile>out/settings.py</OutputFile>
        </Python>
    </mx:Metadata>
    <Port>80</Port>
    <Host>localhost</Host>
    <Tags>
        <Tag>a</Tag>
        <Tag>b</Tag>
    </Tags>
</Settings>`

	override = `<?xml version="1.0"?>
<Settings xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata>
        <BaseFile>base.mxml</BaseFile>
        <MergedXmlFile>out/prod.xml</MergedXmlFile>
    </mx:Metadata>
    <Port>443</Port>
</Settings>`

	broken = `<?xml version="1.0"?>
<Settings xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata><BaseFile>base.mxml</BaseFile></mx:Metadata>
    <Port>high</Port>
</Settings>`
)

func abs(name string) string {
	return filepath.Join(string(filepath.Separator)+"cfg", name)
}

func newBuilder(t *testing.T) (*Builder, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range map[string]string{"base.mxml": base, "prod.mxml": override, "broken.mxml": broken} {
		require.NoError(t, afero.WriteFile(fs, abs(name), []byte(content), 0o644))
	}

	return New(fs, zaptest.NewLogger(t)), fs
}

func TestBuild_BaseWithCodeGen(t *testing.T) {
	b, fs := newBuilder(t)

	res, diags := b.Build(abs("base.mxml"))
	require.NotNil(t, res, "errors: %v", diags.Errors)

	backends := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		backends = append(backends, f.Backend)
	}

	assert.Equal(t, []string{MergedXMLBackend, "python", "go"}, backends)
	assert.ElementsMatch(t, []string{abs("out/base.xml"), abs("out/settings.py"), abs("out/settings.go")}, res.Written)

	src, err := afero.ReadFile(fs, abs("out/settings.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package settings")
	assert.Contains(t, string(src), "Port")
}

func TestBuild_OverrideWritesMergedXML(t *testing.T) {
	b, fs := newBuilder(t)

	res, diags := b.Build(abs("prod.mxml"))
	require.NotNil(t, res, "errors: %v", diags.Errors)

	require.Len(t, res.Files, 1)
	assert.Equal(t, []string{abs("out/prod.xml")}, res.Written)

	data, err := afero.ReadFile(fs, abs("out/prod.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Port>443</Port>")
	assert.Contains(t, string(data), "<Host>localhost</Host>")
}

func TestBuild_DryRunWritesNothing(t *testing.T) {
	b, fs := newBuilder(t)
	b.DryRun = true

	res, diags := b.Build(abs("prod.mxml"))
	require.NotNil(t, res, "errors: %v", diags.Errors)

	assert.Len(t, res.Files, 1)
	assert.Empty(t, res.Written)

	exists, err := afero.Exists(fs, abs("out/prod.xml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuild_ErrorsStopOutput(t *testing.T) {
	b, fs := newBuilder(t)

	res, diags := b.Build(abs("broken.mxml"))

	assert.Nil(t, res)
	require.NotEmpty(t, diags.Errors)
	assert.Equal(t, abs("broken.mxml"), diags.Errors[0].Document)

	exists, err := afero.DirExists(fs, abs("out"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuild_FormatFailureKeepsRawSource(t *testing.T) {
	b, fs := newBuilder(t)

	bad := `<Settings xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata>
        <Go>
            <Enabled>true</Enabled>
            <PackageName>1bad</PackageName>
            <OutputFile>out/bad.go</OutputFile>
        </Go>
    </mx:Metadata>
    <Port>80</Port>
</Settings>`
	require.NoError(t, afero.WriteFile(fs, abs("bad.mxml"), []byte(bad), 0o644))

	res, diags := b.Build(abs("bad.mxml"))

	assert.Nil(t, res)
	require.NotEmpty(t, diags.Errors)
	assert.Equal(t, CodeGenerate, diags.Errors[0].Code)

	exists, err := afero.Exists(fs, gen.UnformattedPath(abs("out/bad.go")))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, abs("out/bad.go"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuildAll(t *testing.T) {
	b, _ := newBuilder(t)
	paths := []string{abs("base.mxml"), abs("broken.mxml"), abs("prod.mxml")}

	outcomes, err := b.BuildAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, outcomes, len(paths))

	for i, o := range outcomes {
		assert.Equal(t, paths[i], o.Path)
	}

	assert.NotNil(t, outcomes[0].Result)
	assert.Nil(t, outcomes[1].Result)
	assert.NotNil(t, outcomes[2].Result)
	assert.True(t, Failed(outcomes))
	assert.False(t, Failed([]Outcome{outcomes[0], outcomes[2]}))
}

func TestBuildAll_Cancelled(t *testing.T) {
	b, _ := newBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.BuildAll(ctx, []string{abs("base.mxml")})
	assert.ErrorIs(t, err, context.Canceled)
}
