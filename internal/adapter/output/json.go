package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatPlacement writes a placement as a JSON object.
func (f *JSONFormatter) FormatPlacement(w io.Writer, p positioner.Placement) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(p)
}

// FormatDisplays writes displays as a JSON array.
func (f *JSONFormatter) FormatDisplays(w io.Writer, displays []geometry.Display) error {
	if displays == nil {
		displays = []geometry.Display{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(displays)
}
