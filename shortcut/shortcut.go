package shortcut

import (
	"errors"
	"fmt"
)

// State is the transition a shortcut event reports.
type State int

const (
	Released State = iota
	Pressed
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is one press or release of the bound shortcut.
type Event struct {
	State State
}

// Source provides global shortcut registration with press/release events.
// Keydown and Keyup are only fed after a successful Register.
type Source interface {
	Binding() Binding
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

var (
	ErrNoKeyboard  = errors.New("no keyboard devices available")
	ErrUnsupported = errors.New("global shortcuts are not supported on this platform")
	ErrInvalid     = errors.New("invalid binding")
)

// RegistrationError reports that a binding could not be claimed at startup.
type RegistrationError struct {
	Binding Binding
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registering shortcut %s: %v", e.Binding, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
