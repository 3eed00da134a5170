//go:build darwin || windows

package shortcut

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"
)

var xKeys = map[Key]hotkey.Key{
	'A': hotkey.KeyA, 'B': hotkey.KeyB, 'C': hotkey.KeyC, 'D': hotkey.KeyD, 'E': hotkey.KeyE,
	'F': hotkey.KeyF, 'G': hotkey.KeyG, 'H': hotkey.KeyH, 'I': hotkey.KeyI, 'J': hotkey.KeyJ,
	'K': hotkey.KeyK, 'L': hotkey.KeyL, 'M': hotkey.KeyM, 'N': hotkey.KeyN, 'O': hotkey.KeyO,
	'P': hotkey.KeyP, 'Q': hotkey.KeyQ, 'R': hotkey.KeyR, 'S': hotkey.KeyS, 'T': hotkey.KeyT,
	'U': hotkey.KeyU, 'V': hotkey.KeyV, 'W': hotkey.KeyW, 'X': hotkey.KeyX, 'Y': hotkey.KeyY,
	'Z': hotkey.KeyZ,
	'0': hotkey.Key0, '1': hotkey.Key1, '2': hotkey.Key2, '3': hotkey.Key3, '4': hotkey.Key4,
	'5': hotkey.Key5, '6': hotkey.Key6, '7': hotkey.Key7, '8': hotkey.Key8, '9': hotkey.Key9,
	KeySpace: hotkey.KeySpace,
}

type xSource struct {
	binding Binding
	hk      *hotkey.Hotkey
	keydown chan struct{}
	keyup   chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// New creates a shortcut source using golang.design/x/hotkey (Cocoa/Win32).
func New(b Binding) Source {
	return &xSource{
		binding: b,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

func (h *xSource) Binding() Binding { return h.binding }

func (h *xSource) Register() error {
	key, ok := xKeys[h.binding.Key()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalid, h.binding)
	}
	var mods []hotkey.Modifier
	for _, m := range h.binding.Modifiers() {
		xm, ok := xModifier(m)
		if !ok {
			return fmt.Errorf("%w: modifier %s not available", ErrInvalid, m)
		}
		mods = append(mods, xm)
	}

	h.hk = hotkey.New(mods, key)
	if err := h.hk.Register(); err != nil {
		return err
	}
	h.stop = make(chan struct{})
	go h.forward(h.hk.Keydown(), h.keydown)
	go h.forward(h.hk.Keyup(), h.keyup)
	return nil
}

func (h *xSource) forward(in <-chan hotkey.Event, out chan<- struct{}) {
	for {
		select {
		case <-h.stop:
			return
		case <-in:
			select {
			case out <- struct{}{}:
			case <-h.stop:
				return
			}
		}
	}
}

func (h *xSource) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		if h.hk != nil {
			h.hk.Unregister()
		}
	})
}

func (h *xSource) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *xSource) Keyup() <-chan struct{} {
	return h.keyup
}

// Diagnose checks hotkey availability and returns a status message.
func Diagnose(b Binding) (string, error) {
	if _, ok := xKeys[b.Key()]; !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalid, b)
	}
	return fmt.Sprintf("hotkey support available (%s)", b), nil
}
