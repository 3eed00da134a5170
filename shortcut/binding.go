package shortcut

import "strings"

type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModShift, "Shift"},
	{ModAlt, "Alt"},
	{ModSuper, "Super"},
}

// Key is the base key of a binding: 'A'-'Z', '0'-'9' or KeySpace.
type Key byte

const KeySpace Key = ' '

func (k Key) String() string {
	if k == KeySpace {
		return "Space"
	}
	return string(rune(k))
}

func (k Key) valid() bool {
	return k == KeySpace || (k >= 'A' && k <= 'Z') || (k >= '0' && k <= '9')
}

// Binding is an immutable key combination: a set of modifiers plus one base key.
type Binding struct {
	mods Modifier
	key  Key
}

// NewBinding builds a binding. Lower-case letters are folded to upper case;
// keys outside the supported set produce the zero Binding.
func NewBinding(key Key, mods ...Modifier) Binding {
	if key >= 'a' && key <= 'z' {
		key -= 'a' - 'A'
	}
	if !key.valid() {
		return Binding{}
	}
	var m Modifier
	for _, mod := range mods {
		m |= mod
	}
	return Binding{mods: m, key: key}
}

// Default is the application's single global shortcut, Ctrl+Shift+P.
func Default() Binding {
	return NewBinding('P', ModCtrl, ModShift)
}

func (b Binding) Key() Key { return b.key }

func (b Binding) Has(m Modifier) bool { return b.mods&m == m }

// Modifiers lists the binding's modifiers in Ctrl, Shift, Alt, Super order.
func (b Binding) Modifiers() []Modifier {
	var out []Modifier
	for _, mn := range modifierNames {
		if b.mods&mn.mod != 0 {
			out = append(out, mn.mod)
		}
	}
	return out
}

func (b Binding) IsZero() bool { return b.key == 0 }

func (b Binding) String() string {
	if b.IsZero() {
		return "<none>"
	}
	parts := make([]string, 0, 5)
	for _, mn := range modifierNames {
		if b.mods&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	parts = append(parts, b.key.String())
	return strings.Join(parts, "+")
}

func (m Modifier) String() string {
	for _, mn := range modifierNames {
		if mn.mod == m {
			return mn.name
		}
	}
	return "?"
}
