// Package core provides display lookup and sorting logic.
package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// LookupByID finds a display by its ID.
// Returns nil if not found.
func LookupByID(displays []geometry.Display, id int) *geometry.Display {
	for i := range displays {
		if displays[i].ID == id {
			return &displays[i]
		}
	}
	return nil
}

// LookupByName finds a display by connector name (case-insensitive).
// Returns nil if not found.
func LookupByName(displays []geometry.Display, name string) *geometry.Display {
	if name == "" {
		return nil
	}
	for i := range displays {
		if strings.EqualFold(displays[i].Name, name) {
			return &displays[i]
		}
	}
	return nil
}

// Lookup resolves a user supplied selector: a numeric display ID or a
// connector name such as "eDP-1".
func Lookup(displays []geometry.Display, selector string) *geometry.Display {
	if id, err := strconv.Atoi(selector); err == nil {
		return LookupByID(displays, id)
	}
	return LookupByName(displays, selector)
}
