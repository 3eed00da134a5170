package window

import "sync"

// Command names an operation issued to a Fake window.
type Command string

const (
	CmdQuery Command = "query-visible"
	CmdHide  Command = "hide"
	CmdShow  Command = "show"
	CmdFocus Command = "set-focus"
)

// Fake is an in-memory window that records every command issued to it.
type Fake struct {
	mu       sync.Mutex
	visible  bool
	focused  bool
	commands []Command

	QueryErr error
	HideErr  error
	ShowErr  error
	FocusErr error
}

func NewFake(visible bool) *Fake {
	return &Fake{visible: visible, focused: visible}
}

func (f *Fake) record(c Command) {
	f.commands = append(f.commands, c)
}

func (f *Fake) IsVisible() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(CmdQuery)
	if f.QueryErr != nil {
		return false, f.QueryErr
	}
	return f.visible, nil
}

func (f *Fake) Hide() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(CmdHide)
	if f.HideErr != nil {
		return f.HideErr
	}
	f.visible = false
	f.focused = false
	return nil
}

func (f *Fake) Show() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(CmdShow)
	if f.ShowErr != nil {
		return f.ShowErr
	}
	f.visible = true
	return nil
}

func (f *Fake) SetFocus() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(CmdFocus)
	if f.FocusErr != nil {
		return f.FocusErr
	}
	f.focused = true
	return nil
}

// Visible reports the current state without recording a command.
func (f *Fake) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *Fake) Focused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

// Commands returns the mutating commands issued so far, in order. Queries are
// omitted unless withQueries is set.
func (f *Fake) Commands(withQueries bool) []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, 0, len(f.commands))
	for _, c := range f.commands {
		if c == CmdQuery && !withQueries {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *Fake) Count(c Command) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, got := range f.commands {
		if got == c {
			n++
		}
	}
	return n
}
