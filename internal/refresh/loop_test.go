package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/srvmon/internal/model"
)

type fakeBuilder struct {
	calls  atomic.Int32
	onCall func(n int32)
	ts     time.Time
}

func (b *fakeBuilder) Sample(context.Context) model.Snapshot {
	n := b.calls.Add(1)
	if b.onCall != nil {
		b.onCall(n)
	}
	return model.Snapshot{
		Timestamp: b.ts,
		Users:     model.Available([]string{"root"}),
	}
}

type renderFunc func(Frame) error

func (f renderFunc) Render(fr Frame) error { return f(fr) }

func TestSampleTransitions(t *testing.T) {
	b := &fakeBuilder{ts: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	l := New(b, time.Second, nil)
	assert.Equal(t, Idle, l.State())

	f, err := l.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Rendering, l.State())
	assert.Equal(t, b.ts, f.Taken)
	assert.NotEmpty(t, f.Rows)
	assert.NotEmpty(t, f.Header)

	_, err = l.Sample(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, int32(1), b.calls.Load())

	l.Rendered()
	assert.Equal(t, Sleeping, l.State())
	_, err = l.Sample(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	l.Woke()
	assert.Equal(t, Idle, l.State())
	_, err = l.Sample(context.Background())
	assert.NoError(t, err)
}

func TestWokeOutOfOrderIsIgnored(t *testing.T) {
	l := New(&fakeBuilder{}, time.Second, nil)
	_, err := l.Sample(context.Background())
	require.NoError(t, err)

	l.Woke()
	assert.Equal(t, Rendering, l.State())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &fakeBuilder{}
	l := New(b, time.Millisecond, nil)

	var frames int
	err := l.Run(ctx, renderFunc(func(Frame) error {
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, frames)
	assert.Equal(t, int32(3), b.calls.Load())
	assert.Equal(t, Idle, l.State())
}

func TestRunCancelDuringSamplingSkipsRender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &fakeBuilder{onCall: func(n int32) {
		if n == 2 {
			cancel()
		}
	}}
	l := New(b, time.Millisecond, nil)

	var frames int
	err := l.Run(ctx, renderFunc(func(Frame) error {
		frames++
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, frames)
	assert.Equal(t, Idle, l.State())
}

func TestRunRenderErrorStops(t *testing.T) {
	boom := errors.New("stdout closed")
	l := New(&fakeBuilder{}, time.Millisecond, nil)

	err := l.Run(context.Background(), renderFunc(func(Frame) error { return boom }))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Idle, l.State())
}

func TestRunSleepsForInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := 30 * time.Millisecond
	l := New(&fakeBuilder{}, interval, nil)

	var stamps []time.Time
	err := l.Run(ctx, renderFunc(func(Frame) error {
		stamps = append(stamps, time.Now())
		if len(stamps) == 2 {
			cancel()
		}
		return nil
	}))
	require.NoError(t, err)
	require.Len(t, stamps, 2)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), interval)
}

func TestOnce(t *testing.T) {
	b := &fakeBuilder{}
	l := New(b, time.Hour, nil)

	var got []Frame
	err := l.Once(context.Background(), renderFunc(func(f Frame) error {
		got = append(got, f)
		return nil
	}))
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, Idle, l.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "sampling", Sampling.String())
	assert.Equal(t, "rendering", Rendering.String())
	assert.Equal(t, "sleeping", Sleeping.String())
}
