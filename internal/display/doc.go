// Package display binds the positioner to GTK4. It reads monitor geometry
// from GDK and moves Wayland layer-shell windows to computed positions.
package display
