package shortcut

import "encoding/binary"

// Linux input-event-codes.h values.
const (
	evKey       = 1
	keyRelease  = 0
	keyPress    = 1
	keyAutoRept = 2

	keyLCtrl  = 29
	keyRCtrl  = 97
	keyLShift = 42
	keyRShift = 54
	keyLAlt   = 56
	keyRAlt   = 100
	keyLMeta  = 125
	keyRMeta  = 126
	keySpace  = 57
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

var evdevModifiers = map[uint16]Modifier{
	keyLCtrl:  ModCtrl,
	keyRCtrl:  ModCtrl,
	keyLShift: ModShift,
	keyRShift: ModShift,
	keyLAlt:   ModAlt,
	keyRAlt:   ModAlt,
	keyLMeta:  ModSuper,
	keyRMeta:  ModSuper,
}

var evdevKeys = map[Key]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'Q': 16, 'W': 17, 'E': 18, 'R': 19, 'T': 20, 'Y': 21, 'U': 22, 'I': 23, 'O': 24, 'P': 25,
	'A': 30, 'S': 31, 'D': 32, 'F': 33, 'G': 34, 'H': 35, 'J': 36, 'K': 37, 'L': 38,
	'Z': 44, 'X': 45, 'C': 46, 'V': 47, 'B': 48, 'N': 49, 'M': 50,
	KeySpace: keySpace,
}

// evdevMatcher turns a raw key event stream from one device into binding
// press/release transitions. Modifiers must match exactly; auto-repeat is dropped.
type evdevMatcher struct {
	key     uint16
	mods    Modifier
	held    map[uint16]bool
	keyDown bool
}

func newEvdevMatcher(b Binding) (*evdevMatcher, bool) {
	code, ok := evdevKeys[b.Key()]
	if !ok {
		return nil, false
	}
	return &evdevMatcher{
		key:  code,
		mods: b.mods,
		held: make(map[uint16]bool),
	}, true
}

func (m *evdevMatcher) heldMods() Modifier {
	var out Modifier
	for code, down := range m.held {
		if down {
			out |= evdevModifiers[code]
		}
	}
	return out
}

func (m *evdevMatcher) feed(code uint16, value int32) (State, bool) {
	if _, isMod := evdevModifiers[code]; isMod {
		switch value {
		case keyPress:
			m.held[code] = true
		case keyRelease:
			delete(m.held, code)
		}
		return 0, false
	}
	if code != m.key {
		return 0, false
	}
	switch value {
	case keyPress:
		if !m.keyDown && m.heldMods() == m.mods {
			m.keyDown = true
			return Pressed, true
		}
	case keyRelease:
		if m.keyDown {
			m.keyDown = false
			return Released, true
		}
	}
	return 0, false
}

// feedRaw decodes one input_event record. Non-key events are ignored.
func (m *evdevMatcher) feedRaw(rec []byte) (State, bool) {
	if len(rec) < inputEventSize {
		return 0, false
	}
	if binary.LittleEndian.Uint16(rec[16:]) != evKey {
		return 0, false
	}
	code := binary.LittleEndian.Uint16(rec[18:])
	value := int32(binary.LittleEndian.Uint32(rec[20:]))
	return m.feed(code, value)
}
