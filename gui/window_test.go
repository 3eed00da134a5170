//go:build gui

package gui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"tradetools/config"
	"tradetools/shortcut"
	"tradetools/toggle"
	"tradetools/trade"
	"tradetools/window"
)

// newTestApp builds the App around fyne's headless driver, stopping short of
// Run.
func newTestApp(t *testing.T) *App {
	t.Helper()
	prices, err := trade.NewPriceList(trade.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	a := NewApp(config.Default(), "press Ctrl+Shift+P to show or hide", prices,
		filepath.Join(t.TempDir(), "prices.yaml"), nil)
	a.fyneApp = test.NewTempApp(t)
	a.buildMain()
	return a
}

func TestMainWindowTracksVisibility(t *testing.T) {
	a := newTestApp(t)
	m := a.main

	if v, err := m.IsVisible(); err != nil || v {
		t.Fatalf("new window: visible=%v err=%v", v, err)
	}
	if err := m.Show(); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.IsVisible(); !v {
		t.Error("visible after Show")
	}
	if err := m.SetFocus(); err != nil {
		t.Errorf("SetFocus: %v", err)
	}
	if err := m.Hide(); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.IsVisible(); v {
		t.Error("hidden after Hide")
	}
}

func TestMainWindowGoneAfterStop(t *testing.T) {
	a := newTestApp(t)
	a.onStarted()
	a.stopped()

	if _, ok := a.Ref()(); ok {
		t.Error("Ref should not resolve once stopped")
	}
	m := a.main
	if _, err := m.IsVisible(); !errors.Is(err, window.ErrNoWindow) {
		t.Errorf("IsVisible: %v", err)
	}
	for name, op := range map[string]func() error{
		"Show":     m.Show,
		"Hide":     m.Hide,
		"SetFocus": m.SetFocus,
	} {
		if err := op(); !errors.Is(err, window.ErrNoWindow) {
			t.Errorf("%s: %v, want ErrNoWindow", name, err)
		}
	}
}

func TestStartHiddenLeavesWindowHidden(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Window.StartHidden = true
	a.onStarted()

	w, ok := a.Ref()()
	if !ok {
		t.Fatal("Ref should resolve once started")
	}
	if v, _ := w.IsVisible(); v {
		t.Error("start_hidden window became visible")
	}
}

func TestCloseHidesAndPressShowsAgain(t *testing.T) {
	a := newTestApp(t)
	a.onStarted()
	c := toggle.New(a.Ref(), window.Direct)

	a.main.interceptClose()
	if v, err := a.main.IsVisible(); err != nil || v {
		t.Fatalf("after close: visible=%v err=%v", v, err)
	}
	if _, ok := a.Ref()(); !ok {
		t.Fatal("closing must keep the window resolvable")
	}

	res := c.Handle(shortcut.Event{State: shortcut.Pressed})
	if res.Action != toggle.ActionShow || res.CommandErr != nil {
		t.Fatalf("press after close: %+v", res)
	}
	if v, _ := a.main.IsVisible(); !v {
		t.Error("press should show the window again")
	}

	res = c.Handle(shortcut.Event{State: shortcut.Pressed})
	if res.Action != toggle.ActionHide {
		t.Errorf("second press: %s", res.Action)
	}
}

func TestTrayToggleGoesThroughController(t *testing.T) {
	a := newTestApp(t)
	a.onStarted()
	c := toggle.New(a.Ref(), window.Direct)

	done := make(chan toggle.Result, 1)
	a.OnToggle(func() { done <- c.Handle(shortcut.Event{State: shortcut.Pressed}) })
	a.trayToggle()

	select {
	case res := <-done:
		if res.Action != toggle.ActionHide {
			t.Errorf("tray on a visible window: %s", res.Action)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tray toggle did not reach the controller")
	}
	if c.Toggles() != 1 {
		t.Errorf("toggles = %d", c.Toggles())
	}
}
