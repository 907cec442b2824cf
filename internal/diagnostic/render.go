package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

// Fprint writes every diagnostic to w, one per line, coloured by severity.
// Colour is disabled when noColor is set.
func Fprint(w io.Writer, d *Diagnostics, noColor bool) error {
	for _, diag := range d.All() {
		c := severityColor(diag.Severity)
		if noColor {
			c.DisableColor()
		}

		if _, err := c.Fprintf(w, "%s", diag.Severity); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, " %s\n", diag.String()); err != nil {
			return err
		}
	}

	return nil
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityError:
		return color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// report is the JSON shape of a Diagnostics value.
type report struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// MarshalJSON renders the diagnostics as {"valid": bool, "diagnostics": [...]}.
func (d *Diagnostics) MarshalJSON() ([]byte, error) {
	all := d.All()
	if all == nil {
		all = []Diagnostic{}
	}

	return json.Marshal(report{Valid: d.IsValid(), Diagnostics: all})
}

// WriteJSON writes the diagnostics to w as indented JSON.
func WriteJSON(w io.Writer, d *Diagnostics) error {
	all := d.All()
	if all == nil {
		all = []Diagnostic{}
	}

	data, err := json.MarshalIndent(report{Valid: d.IsValid(), Diagnostics: all}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling diagnostics: %w", err)
	}

	_, err = w.Write(append(data, '\n'))

	return err
}
