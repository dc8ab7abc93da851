// Package theme loads the GTK CSS used by the traypos show popup.
// A user stylesheet overrides the embedded default.
package theme
