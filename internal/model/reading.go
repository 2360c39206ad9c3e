package model

// Reading is the result of one sensor query: either a value or an
// unavailable marker carrying the reason the value could not be read.
// The zero Reading is unavailable, so an unpopulated field never reads as 0.
type Reading[T any] struct {
	value  T
	reason string
	ok     bool
	absent bool
}

const notSampled = "not sampled"

// Available wraps a successful measurement.
func Available[T any](v T) Reading[T] {
	return Reading[T]{value: v, ok: true}
}

// Unavailable records why a measurement is missing.
func Unavailable[T any](reason string) Reading[T] {
	if reason == "" {
		reason = "unavailable"
	}
	return Reading[T]{reason: reason}
}

// Absent marks a metric the platform does not have at all. It is
// unavailable, and renderers skip it instead of showing a placeholder.
func Absent[T any](reason string) Reading[T] {
	r := Unavailable[T](reason)
	r.absent = true
	return r
}

// IsAbsent reports whether the platform lacks this metric entirely.
func (r Reading[T]) IsAbsent() bool { return r.absent }

// Get returns the value and whether it is available.
func (r Reading[T]) Get() (T, bool) { return r.value, r.ok }

// OK reports whether the reading holds a value.
func (r Reading[T]) OK() bool { return r.ok }

// Reason is empty for available readings.
func (r Reading[T]) Reason() string {
	if r.ok {
		return ""
	}
	if r.reason == "" {
		return notSampled
	}
	return r.reason
}
