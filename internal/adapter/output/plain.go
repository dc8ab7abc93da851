package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/traypos/internal/geometry"
	"github.com/jmylchreest/traypos/internal/positioner"
)

// PlainFormatter formats results as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// A custom template that fails to parse is an error.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// FormatPlacement writes "x y", or a labelled block in verbose mode.
func (f *PlainFormatter) FormatPlacement(w io.Writer, p positioner.Placement) error {
	if f.template != nil {
		if err := f.template.Execute(w, p); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	if !f.opts.Verbose {
		_, err := fmt.Fprintf(w, "%d %d\n", p.Point.X, p.Point.Y)
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("position: %d,%d\n", p.Point.X, p.Point.Y))
	sb.WriteString(fmt.Sprintf("window:   %dx%d\n", p.Window.Width, p.Window.Height))
	sb.WriteString(fmt.Sprintf("taskbar:  %s\n", p.Taskbar))
	sb.WriteString(fmt.Sprintf("anchor:   %s\n", formatRect(p.Anchor)))
	sb.WriteString(fmt.Sprintf("display:  %s\n", displayLabel(p.Display)))
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatDisplays writes one line per display.
func (f *PlainFormatter) FormatDisplays(w io.Writer, displays []geometry.Display) error {
	for i, d := range displays {
		line := fmt.Sprintf("%s display: %s bounds %s work area %s taskbar %s\n",
			humanize.Ordinal(i+1),
			displayLabel(d),
			formatRect(d.Bounds),
			formatRect(d.WorkArea),
			positioner.TaskbarEdge(d),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatRect renders a rectangle in X geometry form, e.g. 1920x1080+0+0.
func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

func displayLabel(d geometry.Display) string {
	if d.Name == "" {
		return fmt.Sprintf("#%d", d.ID)
	}
	return fmt.Sprintf("#%d (%s)", d.ID, d.Name)
}
