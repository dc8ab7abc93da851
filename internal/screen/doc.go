// Package screen provides display geometry sources that need no windowing
// toolkit. Layouts are loaded from YAML, and the pointer position can come
// from an external command such as xdotool.
package screen
