// Package output provides output formatters for placements and displays.
package output

import (
	"fmt"
	"io"
	"text/template"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// Formatter formats positioner results for output.
type Formatter interface {
	// FormatPlacement writes a single placement.
	FormatPlacement(w io.Writer, p positioner.Placement) error
	// FormatDisplays writes a display arrangement.
	FormatDisplays(w io.Writer, displays []geometry.Display) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ValidFormats returns all supported format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range ValidFormats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q, must be one of: %v", s, ValidFormats())
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom template for plain placement output
	Verbose  bool   // Include taskbar, anchor and display in plain output
}

// DefaultFormatterOptions returns the defaults: a bare "x y" line.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{}
}

// templateFuncs returns the functions available to custom templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rect": formatRect,
	}
}
