package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/traypos/internal/positioner"
)

// Default names, used when the caller does not override them.
const (
	DefaultBusName    = "io.github.jmylchreest.traypos"
	DefaultObjectPath = "/io/github/jmylchreest/traypos"
	// DBusInterface is the positioner interface name.
	DBusInterface = "io.github.jmylchreest.traypos.Positioner"
)

// PositionerServer implements the positioner D-Bus interface.
type PositionerServer struct {
	conn    *dbus.Conn
	logger  *slog.Logger
	busName string
	path    dbus.ObjectPath
	iface   string

	mu         sync.RWMutex
	positioner *positioner.Positioner
	defaults   positioner.Alignment
	serverInfo ServerInfo
	running    bool
}

// NewPositionerServer creates a server answering with p. Empty busName or
// path select the defaults.
func NewPositionerServer(p *positioner.Positioner, busName, path string, logger *slog.Logger) *PositionerServer {
	if logger == nil {
		logger = slog.Default()
	}
	if busName == "" {
		busName = DefaultBusName
	}
	if path == "" {
		path = DefaultObjectPath
	}
	return &PositionerServer{
		logger:     logger,
		busName:    busName,
		path:       dbus.ObjectPath(path),
		iface:      DBusInterface,
		positioner: p,
		serverInfo: DefaultServerInfo(),
	}
}

// SetServerInfo sets the server information returned by GetServerInformation.
func (s *PositionerServer) SetServerInfo(info ServerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverInfo = info
}

// SetPositioner swaps the positioner and default alignment used for new calls.
func (s *PositionerServer) SetPositioner(p *positioner.Positioner, defaults positioner.Alignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positioner = p
	s.defaults = defaults
}

func (s *PositionerServer) current() (*positioner.Positioner, positioner.Alignment) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positioner, s.defaults
}

// Start connects to the session bus and exports the positioner service.
func (s *PositionerServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	if !s.path.IsValid() {
		return fmt.Errorf("invalid object path %q", s.path)
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, s.path, s.iface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(s.path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    s.iface,
				Methods: positionerMethods(),
				Signals: positionerSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), s.path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(s.busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", s.busName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus positioner service started", "bus_name", s.busName, "path", s.path)
	return nil
}

// Stop releases the bus name.
func (s *PositionerServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(s.busName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus positioner service stopped")
	return nil
}

// GetServerInformation returns the service name and version.
// D-Bus method: GetServerInformation() -> (ss)
func (s *PositionerServer) GetServerInformation() (string, string, *dbus.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverInfo.Name, s.serverInfo.Version, nil
}

// TaskbarPosition reports the taskbar edge for the display nearest the anchor.
// D-Bus method: TaskbarPosition((iiii)) -> s
func (s *PositionerServer) TaskbarPosition(anchor Rect) (string, *dbus.Error) {
	p, _ := s.current()
	pos, err := p.TaskbarPosition(anchor.ToGeometry())
	if err != nil {
		s.logger.Warn("TaskbarPosition failed", "anchor", anchor.ToGeometry().String(), "error", err)
		return "", dbus.MakeFailedError(err)
	}
	return pos.String(), nil
}

// Calculate returns the top-left origin for the window.
// Empty alignment strings use the configured defaults.
// D-Bus method: Calculate((iiii), (iiii), s, s) -> (ii)
func (s *PositionerServer) Calculate(window, anchor Rect, alignX, alignY string) (int32, int32, *dbus.Error) {
	x, y, _, _, dbusErr := s.Place(window, anchor, alignX, alignY)
	return x, y, dbusErr
}

// Place is Calculate that also returns the taskbar edge and display ID.
// D-Bus method: Place((iiii), (iiii), s, s) -> (iisi)
func (s *PositionerServer) Place(window, anchor Rect, alignX, alignY string) (int32, int32, string, int32, *dbus.Error) {
	requestID := newRequestID()
	p, defaults := s.current()

	align, err := defaults.Override(alignX, alignY)
	if err != nil {
		return 0, 0, "", 0, dbus.MakeFailedError(err)
	}

	placement, err := p.Place(window.ToGeometry(), anchor.ToGeometry(), align)
	if err != nil {
		s.logger.Warn("Place failed", "request_id", requestID, "error", err)
		return 0, 0, "", 0, dbus.MakeFailedError(err)
	}

	s.logger.Debug("Place called",
		"request_id", requestID,
		"window", window.ToGeometry().String(),
		"anchor", anchor.ToGeometry().String(),
		"x", placement.Point.X,
		"y", placement.Point.Y,
		"taskbar", placement.Taskbar.String(),
	)

	return int32(placement.Point.X), int32(placement.Point.Y),
		placement.Taskbar.String(), int32(placement.Display.ID), nil
}

// positionerMethods returns the D-Bus method introspection data.
func positionerMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "TaskbarPosition",
			Args: []introspect.Arg{
				{Name: "anchor", Type: "(iiii)", Direction: "in"},
				{Name: "position", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Calculate",
			Args: []introspect.Arg{
				{Name: "window", Type: "(iiii)", Direction: "in"},
				{Name: "anchor", Type: "(iiii)", Direction: "in"},
				{Name: "align_x", Type: "s", Direction: "in"},
				{Name: "align_y", Type: "s", Direction: "in"},
				{Name: "x", Type: "i", Direction: "out"},
				{Name: "y", Type: "i", Direction: "out"},
			},
		},
		{
			Name: "Place",
			Args: []introspect.Arg{
				{Name: "window", Type: "(iiii)", Direction: "in"},
				{Name: "anchor", Type: "(iiii)", Direction: "in"},
				{Name: "align_x", Type: "s", Direction: "in"},
				{Name: "align_y", Type: "s", Direction: "in"},
				{Name: "x", Type: "i", Direction: "out"},
				{Name: "y", Type: "i", Direction: "out"},
				{Name: "taskbar", Type: "s", Direction: "out"},
				{Name: "display", Type: "i", Direction: "out"},
			},
		},
	}
}

// positionerSignals returns the D-Bus signal introspection data.
func positionerSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Reloaded",
			Args: []introspect.Arg{
				{Name: "platform", Type: "s"},
			},
		},
	}
}
