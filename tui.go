package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradetools/toggle"
	"tradetools/trade"
	"tradetools/window"
)

// termWindow is the main window when running in a terminal. Hidden means the
// panel collapses to a single line. Only touched from the tea goroutine.
type termWindow struct {
	ready   bool
	closed  bool
	visible bool
	focused bool
}

func (w *termWindow) IsVisible() (bool, error) {
	if w.closed {
		return false, window.ErrNoWindow
	}
	return w.visible, nil
}

func (w *termWindow) Hide() error {
	if w.closed {
		return window.ErrNoWindow
	}
	w.visible = false
	w.focused = false
	return nil
}

func (w *termWindow) Show() error {
	if w.closed {
		return window.ErrNoWindow
	}
	w.visible = true
	return nil
}

func (w *termWindow) SetFocus() error {
	if w.closed {
		return window.ErrNoWindow
	}
	w.focused = true
	return nil
}

// dispatchMsg carries a window command onto the tea goroutine.
type dispatchMsg struct {
	fn   func()
	done chan struct{}
}

type toggleResultMsg struct{ res toggle.Result }

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	tuiHintStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("249"))
	tuiDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tuiPanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("236")).Padding(1, 3)
	tuiFocusedPanel = tuiPanelStyle.BorderForeground(lipgloss.Color("220"))
)

type tuiModel struct {
	win     *termWindow
	title   string
	hint    string
	trade   *termTrade
	toggles int
	last    string
	width   int
}

func (m tuiModel) Init() tea.Cmd {
	m.win.ready = true
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		close(msg.done)

	case toggleResultMsg:
		if msg.res.Action != toggle.ActionNone {
			m.toggles++
			m.last = msg.res.Action.String()
			if msg.res.FocusErr != nil || msg.res.CommandErr != nil {
				m.last += " (degraded)"
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.win.closed = true
			return m, tea.Quit
		}
		if m.win.visible && m.trade != nil && m.trade.handleKey(msg) {
			return m, nil
		}
		if msg.String() == "q" {
			m.win.closed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	if !m.win.visible {
		return tuiDimStyle.Render(fmt.Sprintf("%s hidden, %s", m.title, m.hint)) + "\n"
	}

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render(m.title))
	b.WriteString("\n\n")
	if m.trade != nil {
		b.WriteString(m.trade.View())
		b.WriteString("\n\n")
	}
	b.WriteString(tuiHintStyle.Render(m.hint))
	b.WriteString("\n\n")
	status := fmt.Sprintf("toggles: %d", m.toggles)
	if m.last != "" {
		status += "  last: " + m.last
	}
	b.WriteString(tuiDimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("tab switches panels, q to quit"))

	panel := tuiPanelStyle
	if m.win.focused {
		panel = tuiFocusedPanel
	}
	out := panel.Render(b.String())
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
	}
	return out + "\n"
}

// termSurface runs the terminal window. Window commands reach it through
// Program.Send so they execute inside Update.
type termSurface struct {
	program  *tea.Program
	win      *termWindow
	finished chan struct{}
}

func newTermSurface(title, hint string, startHidden bool, prices *trade.PriceList, pricesPath string) *termSurface {
	w := &termWindow{visible: !startHidden, focused: !startHidden}
	m := tuiModel{win: w, title: title, hint: hint, trade: newTermTrade(prices, pricesPath)}
	return &termSurface{
		program:  tea.NewProgram(m, tea.WithAltScreen()),
		win:      w,
		finished: make(chan struct{}),
	}
}

// Run blocks until the program exits.
func (s *termSurface) Run() error {
	defer close(s.finished)
	_, err := s.program.Run()
	return err
}

func (s *termSurface) Quit() { s.program.Quit() }

// Ref is only called from inside Dispatch, on the tea goroutine.
func (s *termSurface) Ref() window.Ref {
	return func() (window.Window, bool) {
		if !s.win.ready || s.win.closed {
			return nil, false
		}
		return s.win, true
	}
}

func (s *termSurface) Dispatch(fn func()) {
	select {
	case <-s.finished:
		return
	default:
	}
	done := make(chan struct{})
	s.program.Send(dispatchMsg{fn: fn, done: done})
	select {
	case <-done:
	case <-s.finished:
	}
}

func (s *termSurface) Observe(res toggle.Result) {
	go s.program.Send(toggleResultMsg{res: res})
}
