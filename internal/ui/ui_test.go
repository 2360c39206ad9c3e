package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/srvmon/internal/model"
	"github.com/Dicklesworthstone/srvmon/internal/refresh"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type stubBuilder struct{}

func (stubBuilder) Sample(context.Context) model.Snapshot {
	return model.Snapshot{
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		CPU: model.CPU{
			PerCore: model.Available([]float64{50, 50}),
			Cores:   model.Available(1),
			Threads: model.Available(2),
			Model:   model.Available("ARM Cortex-A72"),
		},
		GPUs:    model.Available([]model.GPU{}),
		Memory:  model.Available(model.Memory{TotalGB: 8, UsedPercent: 75}),
		Network: model.Available(model.Network{SentMB: 1, ReceivedMB: 2}),
		Users:   model.Available([]string{"pi"}),
	}
}

func newLoop() *refresh.Loop {
	return refresh.New(stubBuilder{}, time.Second, nil)
}

func TestModelCycle(t *testing.T) {
	loop := newLoop()
	m := New(context.Background(), loop, "srvmon")

	msg := m.Init()()
	require.IsType(t, frameMsg{}, msg)
	assert.Equal(t, refresh.Rendering, loop.State())

	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, refresh.Sleeping, loop.State())

	view := next.View()
	assert.Contains(t, view, "srvmon")
	assert.Contains(t, view, "Overall CPU Usage")
	assert.Contains(t, view, "CPU Model                : ARM Cortex-A72")
	assert.Contains(t, view, "Wed May 1 12:00:00 UTC 2024")

	next, cmd = next.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, refresh.Idle, loop.State())
	assert.IsType(t, frameMsg{}, cmd())
	_ = next
}

func TestModelQuitKeys(t *testing.T) {
	m := New(context.Background(), newLoop(), "srvmon")
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

func TestModelQuitsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := newLoop()
	m := New(ctx, loop, "srvmon")

	msg := m.Init()()
	require.IsType(t, errMsg{}, msg)
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, refresh.Idle, loop.State())
}

func TestModelWindowResize(t *testing.T) {
	m := New(context.Background(), newLoop(), "srvmon")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := next.(Model)
	assert.Equal(t, 100, mm.width)
	assert.Equal(t, 30, mm.height)
	assert.Positive(t, mm.table.Height())
}

func TestPlainRendererSingleWrite(t *testing.T) {
	loop := newLoop()
	f, err := loop.Sample(context.Background())
	require.NoError(t, err)

	var buf countingWriter
	p := NewPlainRenderer(&buf, "srvmon", false)
	require.NoError(t, p.Render(f))
	require.NoError(t, p.Close())

	assert.Equal(t, 1, buf.writes)
	out := buf.String()
	assert.NotContains(t, out, clearHome)
	assert.Contains(t, out, "Component")
	assert.Contains(t, out, "Network Received")
	assert.Contains(t, out, "2.00 MB")
	assert.Contains(t, out, "CPU Model                : ARM Cortex-A72")
}

func TestPlainRendererClearsTerminal(t *testing.T) {
	loop := newLoop()
	f, err := loop.Sample(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPlainRenderer(&buf, "srvmon", true)
	require.NoError(t, p.Render(f))
	out := buf.String()
	idx := strings.Index(out, clearHome)
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, strings.Index(out, "srvmon"))

	buf.Reset()
	require.NoError(t, p.Close())
	assert.Contains(t, buf.String(), termenv.CSI+termenv.ShowCursorSeq)
}

type countingWriter struct {
	buf    bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.buf.Write(p)
}

func (w *countingWriter) String() string { return w.buf.String() }
