//go:build gui

package gui

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"tradetools/config"
	"tradetools/trade"
	"tradetools/window"
)

type App struct {
	cfg      *config.Config
	hint     string
	prices   *trade.PriceList
	path     string
	view     *tradeView
	fyneApp  fyne.App
	main     *mainWindow
	started  atomic.Bool
	onReady  func()
	onToggle atomic.Pointer[func()]
}

// NewApp prepares the GUI over prices, which are saved back to pricesPath.
// onReady runs on its own goroutine once the event loop is up and the main
// window exists.
func NewApp(cfg *config.Config, hint string, prices *trade.PriceList, pricesPath string, onReady func()) *App {
	return &App{cfg: cfg, hint: hint, onReady: onReady, prices: prices, path: pricesPath}
}

// OnToggle sets the handler for the tray's Show/Hide item.
func (a *App) OnToggle(fn func()) { a.onToggle.Store(&fn) }

// Run takes over the calling (main) goroutine until Quit.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.tradetools.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	if a.cfg.Tray.Enabled {
		if desk, ok := a.fyneApp.(desktop.App); ok {
			menu := fyne.NewMenu("tradetools",
				fyne.NewMenuItem("Show/Hide", a.trayToggle),
				fyne.NewMenuItem("Quit", a.Quit),
			)
			desk.SetSystemTrayMenu(menu)
			if icon := trayIcon(); icon != nil {
				desk.SetSystemTrayIcon(icon)
			}
		}
	}

	a.buildMain()
	a.main.raise = raiseCurrent

	a.fyneApp.Lifecycle().SetOnStarted(a.onStarted)
	a.fyneApp.Lifecycle().SetOnStopped(a.stopped)

	a.fyneApp.Run()
	return nil
}

// trayToggle runs the OnToggle handler. Handle dispatches back onto the fyne
// goroutine, so it is never called inline from a menu callback.
func (a *App) trayToggle() {
	if fn := a.onToggle.Load(); fn != nil {
		go (*fn)()
	}
}

// buildMain creates the window and its content; fyneApp must exist.
func (a *App) buildMain() {
	a.view = newTradeView(a.prices, a.path)
	size := fyne.NewSize(float32(a.cfg.Window.Width), float32(a.cfg.Window.Height))
	a.main = newMainWindow(a.fyneApp, a.cfg.Window.Title, size, a.view.content(a.hint))
	a.view.win = a.main.win
}

func (a *App) onStarted() {
	if !a.cfg.Window.StartHidden {
		a.main.Show()
	}
	a.started.Store(true)
	if a.onReady != nil {
		go a.onReady()
	}
}

func (a *App) stopped() {
	a.started.Store(false)
	a.main.stop()
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

// Ref resolves the main window once the event loop has started.
func (a *App) Ref() window.Ref {
	return func() (window.Window, bool) {
		if !a.started.Load() || a.main == nil {
			return nil, false
		}
		return a.main, true
	}
}

// Dispatch runs fn on the fyne goroutine and waits for it.
func (a *App) Dispatch(fn func()) {
	fyne.DoAndWait(fn)
}
