package shortcut

import (
	"encoding/binary"
	"testing"
)

func newTestMatcher(t *testing.T) *evdevMatcher {
	t.Helper()
	m, ok := newEvdevMatcher(Default())
	if !ok {
		t.Fatal("default binding has no evdev code")
	}
	return m
}

type keyStep struct {
	code  uint16
	value int32
}

func feedAll(m *evdevMatcher, steps []keyStep) []State {
	var out []State
	for _, s := range steps {
		if st, ok := m.feed(s.code, s.value); ok {
			out = append(out, st)
		}
	}
	return out
}

func TestMatcherPressRelease(t *testing.T) {
	m := newTestMatcher(t)
	got := feedAll(m, []keyStep{
		{keyLCtrl, keyPress},
		{keyRShift, keyPress},
		{25, keyPress},
		{25, keyAutoRept},
		{25, keyAutoRept},
		{25, keyRelease},
	})
	if len(got) != 2 || got[0] != Pressed || got[1] != Released {
		t.Fatalf("got %v, want [pressed released]", got)
	}
}

func TestMatcherRequiresExactModifiers(t *testing.T) {
	m := newTestMatcher(t)
	got := feedAll(m, []keyStep{
		{keyLCtrl, keyPress},
		{25, keyPress},
		{25, keyRelease},
		{keyLShift, keyPress},
		{keyLAlt, keyPress},
		{25, keyPress},
		{25, keyRelease},
	})
	if len(got) != 0 {
		t.Fatalf("expected no events, got %v", got)
	}
}

func TestMatcherModifierReleasedBeforeKey(t *testing.T) {
	m := newTestMatcher(t)
	got := feedAll(m, []keyStep{
		{keyLCtrl, keyPress},
		{keyLShift, keyPress},
		{25, keyPress},
		{keyLCtrl, keyRelease},
		{25, keyRelease},
		{25, keyPress},
	})
	if len(got) != 2 || got[1] != Released {
		t.Fatalf("got %v", got)
	}
}

func TestMatcherFeedRaw(t *testing.T) {
	m := newTestMatcher(t)
	rec := func(typ, code uint16, value int32) []byte {
		b := make([]byte, inputEventSize)
		binary.LittleEndian.PutUint16(b[16:], typ)
		binary.LittleEndian.PutUint16(b[18:], code)
		binary.LittleEndian.PutUint32(b[20:], uint32(value))
		return b
	}

	m.feedRaw(rec(evKey, keyLCtrl, keyPress))
	m.feedRaw(rec(evKey, keyLShift, keyPress))
	if _, ok := m.feedRaw(rec(4, 25, keyPress)); ok {
		t.Error("non-key events must be ignored")
	}
	if _, ok := m.feedRaw(rec(evKey, 25, keyPress)[:10]); ok {
		t.Error("short record must be ignored")
	}
	st, ok := m.feedRaw(rec(evKey, 25, keyPress))
	if !ok || st != Pressed {
		t.Fatalf("got %v %v, want pressed", st, ok)
	}
}

func TestEvdevKeysCoverBindingSet(t *testing.T) {
	for k := Key('A'); k <= 'Z'; k++ {
		if _, ok := evdevKeys[k]; !ok {
			t.Errorf("missing evdev code for %s", k)
		}
	}
	for k := Key('0'); k <= '9'; k++ {
		if _, ok := evdevKeys[k]; !ok {
			t.Errorf("missing evdev code for %s", k)
		}
	}
}
