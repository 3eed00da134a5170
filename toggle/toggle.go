// Package toggle flips the main window between shown and hidden each time
// the global shortcut is pressed.
package toggle

import (
	"sync"
	"time"

	"tradetools/log"
	"tradetools/shortcut"
	"tradetools/window"
)

// Action is the window command a press resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionHide
	ActionShow
)

func (a Action) String() string {
	switch a {
	case ActionHide:
		return "hide"
	case ActionShow:
		return "show"
	}
	return "none"
}

// Decide picks the command for the window's current visibility.
func Decide(visible bool) Action {
	if visible {
		return ActionHide
	}
	return ActionShow
}

// Result describes what one event did. Errors here have already been logged
// and are informational only.
type Result struct {
	State    shortcut.State
	Resolved bool
	Visible  bool
	Action   Action

	QueryErr   error
	CommandErr error
	FocusErr   error

	Elapsed time.Duration
}

// Controller owns no state between events; every press re-reads visibility
// from the window.
type Controller struct {
	ref      window.Ref
	dispatch window.Dispatcher
	observe  func(Result)

	mu      sync.Mutex
	toggles int
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithObserver registers fn to be called after every handled event.
func WithObserver(fn func(Result)) Option {
	return func(c *Controller) { c.observe = fn }
}

// New builds a controller for the window behind ref. A nil dispatch runs
// window commands on the caller's goroutine.
func New(ref window.Ref, dispatch window.Dispatcher, opts ...Option) *Controller {
	if dispatch == nil {
		dispatch = window.Direct
	}
	c := &Controller{ref: ref, dispatch: dispatch}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Handle processes one shortcut event. Only Pressed acts. Calls are
// serialised so two quick presses always alternate.
func (c *Controller) Handle(ev shortcut.Event) Result {
	res := Result{State: ev.State}
	if ev.State != shortcut.Pressed {
		c.notify(res)
		return res
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	c.dispatch(func() { c.toggle(&res) })
	res.Elapsed = time.Since(start)

	if res.Action != ActionNone {
		c.toggles++
		log.Toggle(res.Action.String(), res.Elapsed)
	}
	c.notify(res)
	return res
}

// toggle runs on the window's owning context.
func (c *Controller) toggle(res *Result) {
	if c.ref == nil {
		return
	}
	w, ok := c.ref()
	if !ok || w == nil {
		log.Info("toggle_skipped: window not resolved")
		return
	}
	res.Resolved = true

	visible, err := w.IsVisible()
	if err != nil {
		// A failed query counts as visible, so the command issued is hide.
		res.QueryErr = err
		log.WindowError("query-visible", err)
		visible = true
	}
	res.Visible = visible
	res.Action = Decide(visible)

	switch res.Action {
	case ActionHide:
		if err := w.Hide(); err != nil {
			res.CommandErr = err
			log.WindowError("hide", err)
		}
	case ActionShow:
		if err := w.Show(); err != nil {
			res.CommandErr = err
			log.WindowError("show", err)
		}
		// Focus is attempted even if show failed; it never undoes the show.
		if err := w.SetFocus(); err != nil {
			res.FocusErr = err
			log.WindowError("set-focus", err)
		}
	}
}

func (c *Controller) notify(res Result) {
	if c.observe != nil {
		c.observe(res)
	}
}

// Toggles reports how many presses resulted in a window command.
func (c *Controller) Toggles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggles
}
