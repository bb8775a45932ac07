// Command room opens the interactive desk room viewer.
package main

import (
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"desk-room/app"
	"desk-room/assets"
	"desk-room/config"
	"desk-room/platform"
	"desk-room/renderer"
)

var keyMap = map[int]app.Key{
	platform.KeyLeft:   app.KeyLeft,
	platform.KeyRight:  app.KeyRight,
	platform.KeyUp:     app.KeyUp,
	platform.KeyDown:   app.KeyDown,
	platform.KeyEscape: app.KeyEscape,
}

func main() {
	if err := run(); err != nil {
		slog.Error("room viewer failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.StringP("config", "c", config.DefaultFile, "path to the TOML settings file")
	assetDir := flag.String("assets", "", "asset directory (overrides the config file)")
	verbose := flag.BoolP("verbose", "v", false, "log at debug level")
	quiet := flag.BoolP("quiet", "q", false, "log warnings and errors only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *assetDir != "" {
		cfg.Assets.Dir = *assetDir
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return err
	}
	switch {
	case *verbose:
		level = slog.LevelDebug
	case *quiet:
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	win, err := platform.NewWindow(platform.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
		Samples:   cfg.Window.Samples,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Destroy()

	fbw, fbh := win.GetFramebufferSize()
	engine, err := renderer.NewRenderEngine(fbw, fbh)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	if err := engine.EnableShadows(cfg.Light.ShadowSize); err != nil {
		slog.Warn("continuing without shadows", "err", err)
	}

	loader := assets.NewLoader(cfg.Assets.Dir, cfg.Assets.Workers, assets.NewQueue())
	a := app.New(cfg, win, engine, loader)

	win.SetKeyCallback(func(key int) {
		if k, ok := keyMap[key]; ok {
			a.OnKey(k)
		}
	})
	win.SetMouseButtonCallback(func(button int, pressed bool, x, y float64) {
		if button == platform.MouseLeft {
			a.OnPrimaryButton(pressed, x, y)
		}
	})
	win.SetCursorCallback(a.OnCursor)
	win.SetResizeCallback(a.Resize)

	a.Run()
	return nil
}
