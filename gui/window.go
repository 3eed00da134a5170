//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"tradetools/log"
	"tradetools/window"
)

// mainWindow adapts the fyne window to window.Window. fyne has no visibility
// query, so the adapter tracks it; every show/hide goes through here.
// Methods must run on the fyne goroutine.
type mainWindow struct {
	win     fyne.Window
	visible bool
	closed  bool
	// raise brings the native window forward after RequestFocus. Nil skips it.
	raise func()
}

// newMainWindow creates the hidden main window. Closing it from the window
// manager hides it; the shortcut or the tray brings it back.
func newMainWindow(fa fyne.App, title string, size fyne.Size, content fyne.CanvasObject) *mainWindow {
	win := fa.NewWindow(title)
	win.SetContent(content)
	win.Resize(size)
	win.CenterOnScreen()
	m := &mainWindow{win: win}
	win.SetCloseIntercept(m.interceptClose)
	return m
}

func (m *mainWindow) interceptClose() {
	if err := m.Hide(); err != nil {
		log.WindowError("hide", err)
	}
}

// stop marks the window gone once the event loop has ended.
func (m *mainWindow) stop() {
	m.closed = true
	m.visible = false
}

func raiseCurrent() {
	if gw := glfw.GetCurrentContext(); gw != nil {
		gw.Focus()
	}
}

func (m *mainWindow) IsVisible() (bool, error) {
	if m.closed {
		return false, window.ErrNoWindow
	}
	return m.visible, nil
}

func (m *mainWindow) Hide() error {
	if m.closed {
		return window.ErrNoWindow
	}
	m.win.Hide()
	m.visible = false
	return nil
}

func (m *mainWindow) Show() error {
	if m.closed {
		return window.ErrNoWindow
	}
	m.win.Show()
	m.visible = true
	return nil
}

func (m *mainWindow) SetFocus() error {
	if m.closed {
		return window.ErrNoWindow
	}
	m.win.RequestFocus()
	// RequestFocus is a hint on some window managers; raise the native window too.
	if m.raise != nil {
		m.raise()
	}
	return nil
}
