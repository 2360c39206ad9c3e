// Package ui draws refresh frames, either as a Bubble Tea dashboard or as
// plain full-screen redraws.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/srvmon/internal/refresh"
)

// Key bindings.
const (
	keyQuit    = "q"
	keyQuitAlt = "ctrl+c"
)

// Model renders frames produced by a refresh.Loop. Sampling runs in a
// tea.Cmd so the event loop never blocks on a sensor.
type Model struct {
	ctx   context.Context
	loop  *refresh.Loop
	title string

	table  table.Model
	header []string
	taken  time.Time
	err    error

	width  int
	height int
}

// Messages
type (
	tickMsg  time.Time
	frameMsg refresh.Frame
	errMsg   struct{ err error }
)

func New(ctx context.Context, loop *refresh.Loop, title string) Model {
	return Model{
		ctx:    ctx,
		loop:   loop,
		title:  title,
		table:  newTable(nil, 20, true),
		width:  120,
		height: 40,
	}
}

func (m Model) Init() tea.Cmd { return m.sampleCmd() }

func (m Model) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		f, err := m.loop.Sample(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return frameMsg(f)
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.loop.Interval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyQuitAlt:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		m.taken = msg.Taken
		m.header = msg.Header
		m.err = nil
		m.table.SetRows(tableRows(msg.Rows))
		m.resize()
		// The frame is drawn as soon as Update returns.
		m.loop.Rendered()
		return m, m.tickCmd()

	case tickMsg:
		m.loop.Woke()
		return m, m.sampleCmd()

	case errMsg:
		if errors.Is(msg.err, context.Canceled) || errors.Is(msg.err, context.DeadlineExceeded) {
			return m, tea.Quit
		}
		// Keep the last frame on screen and try again next tick.
		m.err = msg.err
		return m, m.tickCmd()
	}
	return m, nil
}

// resize fits the table between the title block and the footer.
func (m *Model) resize() {
	chrome := len(m.header) + 6
	h := m.height - chrome
	if h < headerLines+1 {
		h = headerLines + 1
	}
	m.table.SetHeight(h)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if !m.taken.IsZero() {
		b.WriteString("  " + subtleStyle.Render(m.taken.Format(timestampLayout)))
	}
	b.WriteString("\n")
	for _, line := range m.header {
		b.WriteString(labelStyle.Render(line) + "\n")
	}

	body := frameStyle.Render(m.table.View())
	footer := subtleStyle.Render("↑/↓ scroll • q quit • every " + m.loop.Interval().String())
	if m.err != nil {
		footer += "  " + subtleStyle.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), body, footer)
}

// RunTUI starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func RunTUI(ctx context.Context, loop *refresh.Loop, title string) error {
	prog := tea.NewProgram(New(ctx, loop, title), tea.WithAltScreen())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			prog.Quit()
		case <-done:
		}
	}()

	_, err := prog.Run()
	return err
}
