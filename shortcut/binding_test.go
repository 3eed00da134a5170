package shortcut

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultBinding(t *testing.T) {
	b := Default()
	if got := b.String(); got != "Ctrl+Shift+P" {
		t.Errorf("got %q, want Ctrl+Shift+P", got)
	}
	if !b.Has(ModCtrl) || !b.Has(ModShift) || b.Has(ModAlt) {
		t.Errorf("unexpected modifiers: %v", b.Modifiers())
	}
	if b.Key() != 'P' {
		t.Errorf("key = %v, want P", b.Key())
	}
}

func TestBindingFoldsLowerCase(t *testing.T) {
	if NewBinding('p', ModCtrl) != NewBinding('P', ModCtrl) {
		t.Error("lower-case key should fold to upper case")
	}
}

func TestBindingModifierOrder(t *testing.T) {
	b := NewBinding(KeySpace, ModSuper, ModShift, ModCtrl)
	if got := b.String(); got != "Ctrl+Shift+Super+Space" {
		t.Errorf("got %q", got)
	}
	mods := b.Modifiers()
	mods[0] = ModAlt
	if b.Has(ModAlt) {
		t.Error("Modifiers must return a copy")
	}
}

func TestBindingInvalidKey(t *testing.T) {
	b := NewBinding('#', ModCtrl)
	if !b.IsZero() {
		t.Errorf("expected zero binding, got %s", b)
	}
	if b.String() != "<none>" {
		t.Errorf("got %q", b.String())
	}
}

func TestRegistrationErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("setup: %w", &RegistrationError{Binding: Default(), Err: ErrNoKeyboard})

	var regErr *RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatal("expected RegistrationError")
	}
	if regErr.Binding != Default() {
		t.Errorf("binding = %s", regErr.Binding)
	}
	if !errors.Is(err, ErrNoKeyboard) {
		t.Error("expected cause to unwrap to ErrNoKeyboard")
	}
}

func TestFakeRegister(t *testing.T) {
	f := NewFake(Default())
	f.FailRegister(ErrUnsupported)
	if err := f.Register(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("got %v", err)
	}
	if f.Registered() {
		t.Error("failed register must not mark registered")
	}

	f.FailRegister(nil)
	if err := f.Register(); err != nil {
		t.Fatal(err)
	}
	if !f.Registered() || f.Registrations() != 2 {
		t.Errorf("registered=%v registrations=%d", f.Registered(), f.Registrations())
	}
	f.Unregister()
	if f.Registered() {
		t.Error("still registered after Unregister")
	}
}
