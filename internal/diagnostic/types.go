package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"mixable/internal/common"
)

// Diagnostics holds all diagnostic information from a single chain resolution.
// The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic

	// document is attached to every diagnostic added while it is set.
	document string
	seen     map[dedupKey]struct{}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Document is the file the diagnostic was raised for (if any).
	Document string `json:"document,omitempty"`
	// Path is the logical element path inside the document, e.g. "/Configuration/A".
	Path string `json:"path,omitempty"`
	// Suggestions are potential fixes or alternatives.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

type dedupKey struct {
	severity Severity
	message  string
	path     string
}

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}

	return nil
}

// SetDocument sets the document attached to subsequently added diagnostics.
func (d *Diagnostics) SetDocument(path string) {
	d.document = path
}

// Document returns the current document context.
func (d *Diagnostics) Document() string {
	return d.document
}

// Add records a diagnostic unless an identical one (same severity, message
// and path) was already recorded. It reports whether the diagnostic was new.
func (d *Diagnostics) Add(diag Diagnostic) bool {
	if d.seen == nil {
		d.seen = make(map[dedupKey]struct{})
	}

	key := dedupKey{severity: diag.Severity, message: diag.Message, path: diag.Path}
	if _, ok := d.seen[key]; ok {
		return false
	}

	d.seen[key] = struct{}{}

	if diag.Document == "" {
		diag.Document = d.document
	}

	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}

	return true
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, path string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Path: path})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, path string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Path: path})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, path string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Path: path})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// ErrorCount returns the number of error diagnostics.
func (d *Diagnostics) ErrorCount() int {
	return len(d.Errors)
}

// Merge merges another Diagnostics instance into this one, keeping deduplication.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	for _, list := range [][]Diagnostic{other.Errors, other.Warnings, other.Infos} {
		for _, diag := range list {
			d.Add(diag)
		}
	}
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Document != "" {
		prefix = append(prefix, "["+d.Document+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
