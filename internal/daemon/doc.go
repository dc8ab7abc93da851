// Package daemon provides the background pieces of traypos serve.
// It watches the configuration and display layout files and hands freshly
// validated configuration to the service so the positioner can be rebuilt
// without a restart.
package daemon
