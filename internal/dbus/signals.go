package dbus

import (
	"fmt"
)

// EmitReloaded emits the Reloaded signal after the positioner was replaced,
// e.g. because the configuration file changed.
func (s *PositionerServer) EmitReloaded(platform string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(s.path, s.iface+".Reloaded", platform)
	if err != nil {
		return fmt.Errorf("failed to emit Reloaded signal: %w", err)
	}

	s.logger.Debug("emitted Reloaded signal", "platform", platform)
	return nil
}
