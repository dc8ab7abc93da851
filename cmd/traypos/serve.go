package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/config"
	"github.com/jmylchreest/traypos/internal/daemon"
	"github.com/jmylchreest/traypos/internal/dbus"
	"github.com/jmylchreest/traypos/internal/display"
	"github.com/jmylchreest/traypos/internal/positioner"
)

const serveAppID = "io.github.jmylchreest.traypos.daemon"

var serveOpts struct {
	noWatch bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the positioner as a D-Bus service",
	Long: `Run the positioner on the session bus so other programs can ask where
to put their popups.

Interface io.github.jmylchreest.traypos.Positioner:
  Calculate((iiii) window, (iiii) anchor, s align_x, s align_y) -> (i x, i y)
  Place(...)                  -> (i x, i y, s taskbar, i display)
  TaskbarPosition((iiii))     -> s
  GetServerInformation()      -> (s name, s version)
  signal Reloaded(s platform)

The config file (and the layout file, for the static provider) is watched
and changes are applied without a restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveOpts.noWatch, "no-watch", false,
		"Do not reload when the config file changes")
}

// service ties the D-Bus server to a config-dependent positioner.
type service struct {
	server   *dbus.PositionerServer
	watcher  *daemon.ConfigWatcher
	monitors *display.MonitorProvider
	platform atomic.Value // string
}

// buildPositioner creates the positioner for c. GDK monitors are reused
// across reloads; the static provider is rebuilt so layout edits apply.
func (s *service) buildPositioner(c *config.Config) (*positioner.Positioner, error) {
	if c.Display.Provider == config.ProviderStatic {
		provider, err := newStaticSource(c)
		if err != nil {
			return nil, err
		}
		return newPositioner(c, provider), nil
	}
	if s.monitors == nil {
		return nil, fmt.Errorf("gdk provider: %w", display.ErrNoDisplay)
	}
	return newPositioner(c, mainLoopSource{inner: s.monitors}), nil
}

// start exports the D-Bus service and starts the config watcher.
func (s *service) start(ctx context.Context, c *config.Config) error {
	p, err := s.buildPositioner(c)
	if err != nil {
		return err
	}

	s.server = dbus.NewPositionerServer(p, c.Service.BusName, c.Service.ObjectPath, logger)
	s.server.SetServerInfo(dbus.ServerInfo{Name: "traypos", Version: version})
	s.server.SetPositioner(p, *c.Alignment())
	s.platform.Store(p.Platform())
	if err := s.server.Start(); err != nil {
		return fmt.Errorf("failed to start D-Bus server: %w", err)
	}

	if serveOpts.noWatch {
		return nil
	}

	// Initialize config watcher for hot-reload
	s.watcher = daemon.NewConfigWatcher(globalOpts.configPath, logger)
	s.watcher.SetDebounce(c.Service.ReloadDebounce.Duration())
	if c.Display.Provider == config.ProviderStatic {
		s.watcher.AddPath(c.LayoutPath())
	}
	s.watcher.SetReloadCallback(s.reload)
	s.watcher.SetErrorCallback(func(err error) {
		logger.Warn("keeping previous configuration", "error", err)
	})
	if err := s.watcher.Start(ctx, c); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
		s.watcher = nil
	}
	return nil
}

// reload swaps in a positioner built from a freshly loaded config.
// Bus name and object path changes need a restart.
func (s *service) reload(newConfig *config.Config) {
	if err := applyOverrides(newConfig); err != nil {
		logger.Warn("reloaded config rejected", "error", err)
		return
	}

	p, err := s.buildPositioner(newConfig)
	if err != nil {
		logger.Warn("failed to rebuild positioner", "error", err)
		return
	}
	s.server.SetPositioner(p, *newConfig.Alignment())
	s.platform.Store(p.Platform())

	if err := s.server.EmitReloaded(p.Platform()); err != nil {
		logger.Warn("failed to emit reloaded signal", "error", err)
	}
	logger.Info("positioner reloaded", "provider", newConfig.Display.Provider, "platform", p.Platform())
}

// monitorsChanged tells clients that placements may differ after hot-plug.
func (s *service) monitorsChanged(count int) {
	if s.server == nil {
		return
	}
	platform, _ := s.platform.Load().(string)
	if err := s.server.EmitReloaded(platform); err != nil {
		logger.Warn("failed to emit reloaded signal", "error", err)
	}
	logger.Info("monitors changed", "count", count)
}

func (s *service) stop() {
	if s.monitors != nil {
		s.monitors.Unwatch()
	}
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.server != nil {
		_ = s.server.Stop()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	c := getConfig()
	logger.Info("starting traypos service", "version", version, "provider", c.Display.Provider)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if c.Display.Provider == config.ProviderStatic {
		return serveStatic(ctx, c)
	}
	return serveGDK(ctx, cancel, c)
}

// serveStatic runs without GTK; nothing needs a main loop.
func serveStatic(ctx context.Context, c *config.Config) error {
	s := &service{}
	if err := s.start(ctx, c); err != nil {
		return err
	}
	logger.Info("traypos ready", "dbus_interface", dbus.DBusInterface)

	<-ctx.Done()
	logger.Info("shutting down")
	s.stop()
	return nil
}

// serveGDK hosts the service in a GTK application so monitor queries run on
// the main loop.
func serveGDK(ctx context.Context, cancel context.CancelFunc, c *config.Config) error {
	app := adw.NewApplication(serveAppID, 0)

	var (
		s       = &service{}
		running atomic.Bool
		runErr  error
	)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		monitors, err := newMonitorProvider(c)
		if err != nil {
			runErr = err
			app.Quit()
			return
		}
		s.monitors = monitors
		monitors.Watch(s.monitorsChanged)

		if err := s.start(ctx, c); err != nil {
			runErr = err
			app.Quit()
			return
		}

		logger.Info("traypos ready", "dbus_interface", dbus.DBusInterface)

		// Create a hidden window to keep the application running
		// (GTK apps quit when all windows are closed)
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	// Handle shutdown
	app.ConnectShutdown(func() {
		s.stop()
		running.Store(false)
	})

	status := app.Run([]string{os.Args[0]})
	cancel()

	if runErr != nil {
		return runErr
	}
	if status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	logger.Info("traypos stopped")
	return nil
}
