// Command rayview opens the viewer window: a full-screen base pass under
// an immediate-mode menu overlay.
//
// Usage:
//
//	rayview [-config rayview.toml] [-width 1280 -height 720] [-vsync=false]
//	        [-backend vulkan|metal|dx12|gl|all] [-log debug]
//	        [-watch-shader screen.wgsl] [-print-config]
//
// Flags override the values of the config file, which override the
// defaults. -print-config writes the resulting configuration as TOML and
// exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/app"
	"github.com/gogpu/rayview/backend"
	_ "github.com/gogpu/rayview/backend/native"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/render"
	"github.com/gogpu/rayview/surface"
	"github.com/gogpu/rayview/window"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "rayview:", err)
		os.Exit(2)
	}
	cfg := opts.cfg
	if opts.printConfig {
		if err := printConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "rayview:", err)
			os.Exit(1)
		}
		return
	}
	rayview.SetLogger(newLogger(cfg.LogLevel, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		rayview.Logger().Error("rayview failed", "err", err)
		fmt.Fprintln(os.Stderr, "rayview:", err)
		stop()
		os.Exit(1)
	}
}

// cliOptions is the parsed command line.
type cliOptions struct {
	cfg         rayview.Config
	printConfig bool
}

// parseFlags builds the configuration from the defaults, the file named
// by -config and the flags that were set explicitly, in that order.
func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	def := rayview.DefaultConfig()
	fs := flag.NewFlagSet("rayview", flag.ContinueOnError)
	fs.SetOutput(output)
	var (
		configPath = fs.String("config", "", "TOML config file")
		width      = fs.Int("width", def.Width, "window width")
		height     = fs.Int("height", def.Height, "window height")
		title      = fs.String("title", def.Title, "window title")
		vsync      = fs.Bool("vsync", def.VSync, "wait for vertical sync")
		backendArg = fs.String("backend", def.Backend, "GPU API: all, vulkan, metal, dx12 or gl")
		lowPower   = fs.Bool("low-power", def.LowPower, "prefer the low power adapter")
		logLevel   = fs.String("log", def.LogLevel, "log level: debug, info, warn, error or off")
		shader     = fs.String("watch-shader", def.ShaderPath, "WGSL file replacing the screen shader, reloaded on change")
		uiScale    = fs.Float64("ui-scale", def.UIScale, "overlay scale multiplier")
		printCfg   = fs.Bool("print-config", false, "print the effective configuration as TOML and exit")
	)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = rayview.LoadConfig(*configPath, def); err != nil {
			return cliOptions{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "title":
			cfg.Title = *title
		case "vsync":
			cfg.VSync = *vsync
		case "backend":
			cfg.Backend = *backendArg
		case "low-power":
			cfg.LowPower = *lowPower
		case "log":
			cfg.LogLevel = *logLevel
		case "watch-shader":
			cfg.ShaderPath = *shader
		case "ui-scale":
			cfg.UIScale = *uiScale
		}
	})
	if err := cfg.Validate(); err != nil {
		return cliOptions{}, err
	}
	return cliOptions{cfg: cfg, printConfig: *printCfg}, nil
}

// printConfig writes cfg to w as TOML.
func printConfig(w io.Writer, cfg rayview.Config) error {
	data, err := cfg.EncodeTOML()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// newLogger returns a text logger at level, or nil when logging is off.
func newLogger(level string, w io.Writer) *slog.Logger {
	lvl, off, err := rayview.ParseLogLevel(level)
	if err != nil || off {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// newSurfaceManager creates the surface manager with the configured
// present modes and power preference.
func newSurfaceManager(ctx context.Context, inst gpucore.Instance, handle gpucore.NativeHandle, width, height int, cfg rayview.Config) (*surface.Manager, error) {
	mgr, err := surface.New(ctx, inst, handle, width, height,
		surface.WithPresentModes(cfg.PresentModes()...),
		surface.WithPowerPreference(cfg.PowerPreference()),
	)
	if err != nil {
		return nil, fmt.Errorf("create surface manager: %w", err)
	}
	return mgr, nil
}

// run owns the startup and teardown order. Teardown releases the UI
// adapter, the compositor, the surface manager, the window and the
// instance, then terminates GLFW.
func run(ctx context.Context, cfg rayview.Config) error {
	backends, err := cfg.Backends()
	if err != nil {
		return err
	}

	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()

	var inst gpucore.Instance
	defer func() {
		if inst != nil {
			inst.Release()
		}
	}()

	win, err := window.New(cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	handle, err := win.NativeHandle()
	if err != nil {
		return err
	}
	if inst, err = backend.OpenDefault(backends); err != nil {
		return err
	}

	fw, fh := win.FramebufferSize()
	mgr, err := newSurfaceManager(ctx, inst, handle, fw, fh, cfg)
	if err != nil {
		return err
	}
	defer mgr.Release()

	info := mgr.AdapterInfo()
	sc := mgr.Config()
	rayview.Logger().Info("surface ready",
		"adapter", info.Name,
		"backend", info.Backend,
		"format", sc.Format,
		"present_mode", sc.PresentMode,
		"width", sc.Width,
		"height", sc.Height,
	)

	comp, err := render.NewCompositor(mgr.Device(), mgr.Format())
	if err != nil {
		return err
	}
	defer func() {
		s := comp.Stats()
		rayview.Logger().Debug("compositor stats", "frames", s.Frames, "textures", s.Textures)
		comp.Release()
	}()

	state := &app.AppState{}
	adapter, err := app.NewUIAdapter(win, state, app.WithUIScale(cfg.UIScale))
	if err != nil {
		return err
	}
	defer adapter.Release()

	var opts []app.ControllerOption
	if cfg.ShaderPath != "" {
		watcher, err := app.WatchShader(cfg.ShaderPath, win.RequestRedraw)
		if err != nil {
			return err
		}
		// Stop the watcher before the window goes away; it posts redraws.
		defer watcher.Close()
		opts = append(opts, app.WithShaderSource(watcher))
	}

	ctrl := app.NewController(win, mgr, comp, adapter, state, opts...)
	win.RequestRedraw()
	err = ctrl.Run(ctx, win)
	rayview.Logger().Info("shutdown", "frames", ctrl.Frames(), "state", ctrl.State())
	return err
}
