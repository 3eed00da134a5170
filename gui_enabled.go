//go:build gui

package main

import (
	"context"
	"os"
	"runtime"
	"sync/atomic"

	"tradetools/config"
	"tradetools/gui"
	"tradetools/log"
	"tradetools/shortcut"
	"tradetools/shutdown"
	"tradetools/toggle"
)

func initGUI(_ options, cfg *config.Config) {
	defer log.Close()

	// Lock this goroutine to OS thread for Fyne/GLFW
	runtime.LockOSThread()

	binding := shortcut.Default()
	log.SessionStart("gui", binding.String())

	ctx, cancel := shutdown.Context(context.Background())
	defer cancel()

	var (
		ctrl   atomic.Pointer[toggle.Controller]
		failed atomic.Bool
		guiApp *gui.App
	)
	prices, pricesPath := loadPrices(cfg)
	guiApp = gui.NewApp(cfg, hintText(binding), prices, pricesPath, func() {
		c, err := startShortcut(ctx, guiApp.Ref(), guiApp.Dispatch)
		if err != nil {
			reportStartupError(err)
			failed.Store(true)
			guiApp.Quit()
			return
		}
		ctrl.Store(c)
		guiApp.OnToggle(func() {
			c.Handle(shortcut.Event{State: shortcut.Pressed})
		})
		<-ctx.Done()
		guiApp.Quit()
	})

	if err := gui.Run(guiApp); err != nil {
		log.Errorf("gui error: %v", err)
	}
	cancel()

	if c := ctrl.Load(); c != nil {
		log.SessionEnd(c.Toggles())
	}
	if failed.Load() {
		log.Close()
		os.Exit(1)
	}
}
