package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	base = `<?xml version="1.0"?>
<Settings xmlns:mx="https://github.com/jamescourtney/mixable">
    <mx:Metadata><MergedXmlFile>out/base.xml</MergedXmlFile></mx:Metadata>
    <Port>80</Port>
    <Host>localhost</Host>
</Settings>`

	prod = `<?xml version="1.0"?>
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

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, fs afero.Fs, args ...string) result {
	t.Helper()

	if fs == nil {
		fs = afero.NewMemMapFs()
		for name, content := range map[string]string{"base.mxml": base, "prod.mxml": prod, "broken.mxml": broken} {
			require.NoError(t, afero.WriteFile(fs, abs(name), []byte(content), 0o644))
		}
	}

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand(fs)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color", "--quiet"}, args...))

	err := cmd.Execute()

	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand(afero.NewMemMapFs())

	assert.Equal(t, "mixable", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"build", "check", "merge", "schema", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestBuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	for name, content := range map[string]string{"base.mxml": base, "prod.mxml": prod} {
		require.NoError(t, afero.WriteFile(fs, abs(name), []byte(content), 0o644))
	}

	res := run(t, fs, "build", abs("base.mxml"), abs("prod.mxml"))
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "wrote "+abs("out/base.xml"))
	assert.Contains(t, res.stdout, "wrote "+abs("out/prod.xml"))

	data, err := afero.ReadFile(fs, abs("out/prod.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Port>443</Port>")
}

func TestBuild_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, abs("base.mxml"), []byte(base), 0o644))

	res := run(t, fs, "build", "--dry-run", abs("base.mxml"))
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "would write "+abs("out/base.xml"))

	exists, err := afero.Exists(fs, abs("out/base.xml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheck(t *testing.T) {
	res := run(t, nil, "check", abs("prod.mxml"))
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "ok "+abs("prod.mxml"))

	res = run(t, nil, "check", abs("prod.mxml"), abs("broken.mxml"))
	assert.ErrorIs(t, res.err, ErrFailed)
	assert.Contains(t, res.stderr, "error")
	assert.Contains(t, res.stderr, "Failed to parse 'high'")
}

func TestCheck_JSON(t *testing.T) {
	res := run(t, nil, "--format", "json", "check", abs("broken.mxml"))

	assert.ErrorIs(t, res.err, ErrFailed)
	assert.Contains(t, res.stdout, `"valid": false`)
	assert.Contains(t, res.stdout, abs("broken.mxml"))
	assert.Empty(t, res.stderr)
}

func TestMerge(t *testing.T) {
	res := run(t, nil, "merge", abs("prod.mxml"))
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "<Port>443</Port>")
	assert.Contains(t, res.stdout, "<Host>localhost</Host>")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, abs("base.mxml"), []byte(base), 0o644))

	res = run(t, fs, "merge", abs("base.mxml"), "-o", abs("merged/out.xml"))
	require.NoError(t, res.err, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := afero.ReadFile(fs, abs("merged/out.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Port>80</Port>")
}

func TestMerge_Errors(t *testing.T) {
	res := run(t, nil, "merge", abs("broken.mxml"))

	assert.ErrorIs(t, res.err, ErrFailed)
	assert.Empty(t, res.stdout)
}

func TestSchema(t *testing.T) {
	res := run(t, nil, "schema", abs("prod.mxml"))
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "name: Port")

	res = run(t, nil, "schema", "--format", "json", abs("prod.mxml"))
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, `"name": "Host"`)

	res = run(t, nil, "schema", "--format", "toml", abs("prod.mxml"))
	assert.Error(t, res.err)
}

func TestInvalidConfig(t *testing.T) {
	res := run(t, nil, "--format", "xml", "check", abs("prod.mxml"))

	require.Error(t, res.err)
	assert.NotErrorIs(t, res.err, ErrFailed)
}

func TestVersion(t *testing.T) {
	Version = "1.0.0-test"
	defer func() { Version = "dev" }()

	res := run(t, nil, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mixable version: 1.0.0-test")
	assert.Contains(t, res.stdout, "Go version: go")
}
