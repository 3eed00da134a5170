//go:build linux

package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type evdevSource struct {
	binding Binding
	keydown chan struct{}
	keyup   chan struct{}
	files   []*os.File
	stop    chan struct{}
	once    sync.Once
}

// New creates a shortcut source using evdev (reads /dev/input directly).
// Requires user to be in the 'input' group.
func New(b Binding) Source {
	return &evdevSource{
		binding: b,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

func (h *evdevSource) Binding() Binding { return h.binding }

func (h *evdevSource) Register() error {
	if _, ok := evdevKeys[h.binding.Key()]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalid, h.binding)
	}

	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("%w (is user in 'input' group?)", ErrNoKeyboard)
	}

	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		m, _ := newEvdevMatcher(h.binding)
		go h.readEvents(f, m)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("%w: could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)", ErrNoKeyboard)
	}

	return nil
}

func (h *evdevSource) readEvents(f *os.File, m *evdevMatcher) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			st, ok := m.feedRaw(buf[i : i+inputEventSize])
			if !ok {
				continue
			}
			ch := h.keyup
			if st == Pressed {
				ch = h.keydown
			}
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

func (h *evdevSource) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *evdevSource) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *evdevSource) Keyup() <-chan struct{} {
	return h.keyup
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks evdev access and returns a status message.
func Diagnose(b Binding) (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("%w (is user in 'input' group?)", ErrNoKeyboard)
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%s via evdev: %d keyboard(s) found, opened %s", b, len(keyboards), opened), nil
}
