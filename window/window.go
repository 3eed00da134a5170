// Package window describes the single main window as the toggle controller
// sees it: a handle it reads and commands but does not own.
package window

import "errors"

var (
	// ErrNoWindow is returned when the handle has been disposed.
	ErrNoWindow = errors.New("window not available")
	// ErrFocusDenied is returned when the platform refuses to move focus.
	ErrFocusDenied = errors.New("focus request denied")
)

// Window is the set of commands the controller issues. Every call may fail;
// callers treat failures as transient.
type Window interface {
	IsVisible() (bool, error)
	Hide() error
	Show() error
	SetFocus() error
}

// Ref resolves the main window at the moment of use. It reports false while
// the window does not exist yet.
type Ref func() (Window, bool)

// Static returns a Ref that always resolves to w. A nil w never resolves.
func Static(w Window) Ref {
	return func() (Window, bool) {
		return w, w != nil
	}
}

// Dispatcher runs fn on the context that owns the window and returns once fn
// has completed. Implementations are fyne.DoAndWait, a bubbletea message
// round-trip, or Direct for windows that serialise their own commands.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) { fn() }
