package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
)

// PopupClass is the CSS class carried by the popup window.
const PopupClass = "traypos-popup"

//go:embed default.css
var defaultCSS string

// Theme is a resolved stylesheet.
type Theme struct {
	CSS       string
	Path      string // Empty for the embedded default
	IsDefault bool
}

// Default returns the embedded stylesheet.
func Default() *Theme {
	return &Theme{CSS: defaultCSS, IsDefault: true}
}

// Resolve reads the stylesheet at path, falling back to the embedded default
// when path is empty or the file does not exist. Other read errors are
// returned.
func Resolve(path string) (*Theme, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return &Theme{CSS: string(data), Path: path}, nil
}
