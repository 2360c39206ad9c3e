package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/srvmon/internal/refresh"
)

// clearHome clears the screen and homes the cursor.
var clearHome = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) + termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)

// PlainRenderer redraws each frame in full. Every frame goes out in one
// Write so a reader never sees a half-drawn table.
type PlainRenderer struct {
	out    *termenv.Output
	w      io.Writer
	title  string
	tty    bool
	hidden bool
}

// NewPlainRenderer writes to w. When tty is true each frame clears the
// screen first and the cursor is hidden until Close.
func NewPlainRenderer(w io.Writer, title string, tty bool) *PlainRenderer {
	return &PlainRenderer{out: termenv.NewOutput(w), w: w, title: title, tty: tty}
}

func (p *PlainRenderer) Render(f refresh.Frame) error {
	if p.tty && !p.hidden {
		p.out.HideCursor()
		p.hidden = true
	}
	_, err := io.WriteString(p.w, p.frame(f))
	return err
}

func (p *PlainRenderer) frame(f refresh.Frame) string {
	var b strings.Builder
	if p.tty {
		b.WriteString(clearHome)
	}
	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("  " + subtleStyle.Render(f.Taken.Format(timestampLayout)) + "\n")
	for _, line := range f.Header {
		b.WriteString(labelStyle.Render(line) + "\n")
	}
	b.WriteString(renderTable(f.Rows))
	b.WriteString("\n")
	if !p.tty {
		b.WriteString("\n")
	}
	return b.String()
}

// Close restores the cursor.
func (p *PlainRenderer) Close() error {
	if p.hidden {
		p.out.ShowCursor()
		p.hidden = false
	}
	return nil
}
