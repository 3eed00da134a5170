package toggle

import (
	"context"

	"tradetools/log"
	"tradetools/shortcut"
	"tradetools/window"
)

// Run feeds events from src into Handle one at a time until ctx is done.
func (c *Controller) Run(ctx context.Context, src shortcut.Source) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-src.Keydown():
			c.Handle(shortcut.Event{State: shortcut.Pressed})
		case <-src.Keyup():
			c.Handle(shortcut.Event{State: shortcut.Released})
		}
	}
}

// Setup registers src's binding once and starts routing its events to a new
// controller for ref. A registration failure is returned as a
// *shortcut.RegistrationError and nothing is started. The binding is
// released when ctx is done.
func Setup(ctx context.Context, src shortcut.Source, ref window.Ref, dispatch window.Dispatcher, opts ...Option) (*Controller, error) {
	if err := src.Register(); err != nil {
		return nil, &shortcut.RegistrationError{Binding: src.Binding(), Err: err}
	}
	log.ShortcutRegistered(src.Binding().String())

	c := New(ref, dispatch, opts...)
	go func() {
		defer src.Unregister()
		c.Run(ctx, src)
	}()
	return c, nil
}
