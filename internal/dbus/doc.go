// Package dbus exposes the positioner on the session bus so that tray
// applications written in any language can ask where to put their popup.
// The service answers Calculate, TaskbarPosition, Place and
// GetServerInformation, and emits Reloaded when its configuration changes.
package dbus
