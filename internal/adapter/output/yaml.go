package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// YAMLFormatter formats results as YAML. Display lists use the same shape
// the static provider's layout file accepts.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatPlacement writes a placement as a YAML document.
func (f *YAMLFormatter) FormatPlacement(w io.Writer, p positioner.Placement) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(p); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatDisplays writes displays under a top-level "displays" key.
func (f *YAMLFormatter) FormatDisplays(w io.Writer, displays []geometry.Display) error {
	doc := struct {
		Displays []geometry.Display `yaml:"displays"`
	}{Displays: displays}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}
