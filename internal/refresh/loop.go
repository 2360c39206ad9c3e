// Package refresh owns the tick cadence: sample, render, sleep, repeat.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Dicklesworthstone/srvmon/internal/model"
	"github.com/Dicklesworthstone/srvmon/internal/present"
)

// ErrBusy is returned by Sample when a tick is already in flight.
var ErrBusy = errors.New("refresh: tick already in progress")

// State is the loop's position in the tick cycle.
type State int32

const (
	Idle State = iota
	Sampling
	Rendering
	Sleeping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	case Rendering:
		return "rendering"
	case Sleeping:
		return "sleeping"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Taken  time.Time
	Header []string
	Rows   []present.Row
}

// Builder produces one snapshot per call.
type Builder interface {
	Sample(ctx context.Context) model.Snapshot
}

// Renderer draws a frame. An error from Render stops the loop.
type Renderer interface {
	Render(Frame) error
}

// Loop sequences ticks. At most one tick is ever in flight.
type Loop struct {
	builder  Builder
	interval time.Duration
	log      *slog.Logger
	state    atomic.Int32
}

func New(b Builder, interval time.Duration, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{builder: b, interval: interval, log: log}
}

// Interval is the sleep between the end of one render and the next sample.
func (l *Loop) Interval() time.Duration { return l.interval }

// State reports the current position in the cycle. Safe from any goroutine.
func (l *Loop) State() State { return State(l.state.Load()) }

// Sample takes one snapshot and maps it to a frame, moving Idle to
// Rendering. If ctx is cancelled while sampling the loop returns to Idle
// and the frame is dropped.
func (l *Loop) Sample(ctx context.Context) (Frame, error) {
	if !l.state.CompareAndSwap(int32(Idle), int32(Sampling)) {
		return Frame{}, ErrBusy
	}
	snap := l.builder.Sample(ctx)
	if err := ctx.Err(); err != nil {
		l.state.Store(int32(Idle))
		return Frame{}, err
	}
	f := Frame{
		Taken:  snap.Timestamp,
		Header: present.Header(snap),
		Rows:   present.Rows(snap),
	}
	l.state.Store(int32(Rendering))
	return f, nil
}

// Rendered marks the frame as drawn.
func (l *Loop) Rendered() {
	l.state.CompareAndSwap(int32(Rendering), int32(Sleeping))
}

// Woke ends the sleep so the next Sample may start.
func (l *Loop) Woke() {
	l.state.CompareAndSwap(int32(Sleeping), int32(Idle))
}

// Run ticks until ctx is cancelled. Cancellation is not an error.
func (l *Loop) Run(ctx context.Context, r Renderer) error {
	timer := time.NewTimer(l.interval)
	timer.Stop()
	defer timer.Stop()

	for {
		if err := l.tick(ctx, r); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		timer.Reset(l.interval)
		select {
		case <-ctx.Done():
			l.Woke()
			return nil
		case <-timer.C:
		}
		l.Woke()
	}
}

// Once samples and renders a single frame.
func (l *Loop) Once(ctx context.Context, r Renderer) error {
	if err := l.tick(ctx, r); err != nil {
		return err
	}
	l.Woke()
	return nil
}

func (l *Loop) tick(ctx context.Context, r Renderer) error {
	f, err := l.Sample(ctx)
	if err != nil {
		return err
	}
	l.log.Debug("frame sampled", "rows", len(f.Rows), "taken", f.Taken)
	if err := r.Render(f); err != nil {
		l.state.Store(int32(Idle))
		return fmt.Errorf("render: %w", err)
	}
	l.Rendered()
	return nil
}
