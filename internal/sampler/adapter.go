package sampler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dicklesworthstone/srvmon/internal/model"
)

// Adapter wraps one metric source. Sample never fails: any error or panic
// in the source comes back as an unavailable Reading.
type Adapter[T any] interface {
	Sample(ctx context.Context) model.Reading[T]
}

// AdapterFunc adapts a plain function to Adapter.
type AdapterFunc[T any] func(ctx context.Context) model.Reading[T]

func (f AdapterFunc[T]) Sample(ctx context.Context) model.Reading[T] { return f(ctx) }

// guard builds an Adapter from a fallible query.
func guard[T any](name string, log *slog.Logger, query func(ctx context.Context) (T, error)) Adapter[T] {
	return AdapterFunc[T](func(ctx context.Context) (r model.Reading[T]) {
		defer func() {
			if p := recover(); p != nil {
				log.Warn("sensor panicked", "sensor", name, "panic", p)
				r = model.Unavailable[T](fmt.Sprintf("%s: panic: %v", name, p))
			}
		}()
		v, err := query(ctx)
		if err != nil {
			log.Debug("sensor unavailable", "sensor", name, "err", err)
			return model.Unavailable[T](err.Error())
		}
		return model.Available(v)
	})
}

// fixed returns the same Reading every tick without touching the host.
func fixed[T any](r model.Reading[T]) Adapter[T] {
	return AdapterFunc[T](func(context.Context) model.Reading[T] { return r })
}
