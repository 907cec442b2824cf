package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Deduplicates(t *testing.T) {
	var d Diagnostics

	d.AddError("unknown_key", "key not present", "/Configuration/A")
	d.AddError("unknown_key", "key not present", "/Configuration/A")
	d.AddError("unknown_key", "key not present", "/Configuration/B")
	d.AddWarning("ambiguous", "key not present", "/Configuration/A")

	assert.Len(t, d.Errors, 2)
	assert.Len(t, d.Warnings, 1)
	assert.Equal(t, 2, d.ErrorCount())
	assert.False(t, d.IsValid())
}

func TestDiagnostics_DocumentContext(t *testing.T) {
	var d Diagnostics

	d.SetDocument("base.mxml")
	d.AddError("x", "first", "/A")
	d.SetDocument("leaf.mxml")
	d.AddInfo("y", "second", "/B")

	require.Len(t, d.Errors, 1)
	assert.Equal(t, "base.mxml", d.Errors[0].Document)
	require.Len(t, d.Infos, 1)
	assert.Equal(t, "leaf.mxml", d.Infos[0].Document)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "same", "/A")
	b.AddError("x", "same", "/A")
	b.AddWarning("w", "other", "/B")

	a.Merge(&b)
	a.Merge(nil)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.NoError(t, d.Error())

	d.AddError("final_override", "may not be overridden", "/Configuration/F")
	d.AddError("unknown_key", "new key", "/Configuration/Z")

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/Configuration/F: [final_override] may not be overridden")
	assert.Contains(t, err.Error(), "; ")
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "message only",
			diag:     Diagnostic{Message: "boom"},
			expected: "boom",
		},
		{
			name:     "with code and path",
			diag:     Diagnostic{Code: "c", Message: "boom", Path: "/A"},
			expected: "/A: [c] boom",
		},
		{
			name:     "with document and suggestions",
			diag:     Diagnostic{Message: "boom", Document: "f.mxml", Path: "/A", Suggestions: []string{"B", "C"}},
			expected: "[f.mxml] /A: boom (did you mean: B, C?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestFprint_NoColor(t *testing.T) {
	var d Diagnostics
	d.AddError("c", "broken", "/A")
	d.AddWarning("w", "odd", "/B")

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, &d, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "error /A: [c] broken", lines[0])
	assert.Equal(t, "warning /B: [w] odd", lines[1])
}

func TestWriteJSON(t *testing.T) {
	var d Diagnostics
	d.AddError("c", "broken", "/A")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &d))

	var decoded struct {
		Valid       bool         `json:"valid"`
		Diagnostics []Diagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.False(t, decoded.Valid)
	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, SeverityError, decoded.Diagnostics[0].Severity)
	assert.Equal(t, "/A", decoded.Diagnostics[0].Path)
}

func TestMarshalJSON_Empty(t *testing.T) {
	var d Diagnostics

	data, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"diagnostics":[]}`, string(data))
}
