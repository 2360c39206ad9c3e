package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReading(t *testing.T) {
	r := Available(42.5)
	v, ok := r.Get()
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)
	assert.Empty(t, r.Reason())

	u := Unavailable[float64]("no sensor")
	v, ok = u.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, "no sensor", u.Reason())
}

func TestReadingZeroValueIsUnavailable(t *testing.T) {
	var r Reading[float64]
	assert.False(t, r.OK())
	assert.Equal(t, "not sampled", r.Reason())

	assert.Equal(t, "unavailable", Unavailable[int]("").Reason())
}

func TestAvailableZeroIsStillAvailable(t *testing.T) {
	r := Available(0.0)
	assert.True(t, r.OK())
}

func TestFahrenheit(t *testing.T) {
	tests := []struct {
		celsius    float64
		fahrenheit float64
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{37, 98.6},
		{45.5, 113.9},
	}
	for _, tt := range tests {
		got := Temperature{Celsius: tt.celsius}.Fahrenheit()
		assert.Equal(t, tt.celsius*9/5+32, got)
		assert.InDelta(t, tt.fahrenheit, got, 1e-9)
	}
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, 1.0, BytesToGB(1<<30))
	assert.Equal(t, 1.0, BytesToMB(1<<20))
	assert.Equal(t, 1.5, BytesToMB(3<<19))
	assert.Equal(t, 15.54, Round2(15.5432))
	assert.Equal(t, 2.35, Round2(2.346))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestAbsent(t *testing.T) {
	r := Absent[LoadAvg]("not supported on windows")
	assert.False(t, r.OK())
	assert.True(t, r.IsAbsent())
	assert.Equal(t, "not supported on windows", r.Reason())
	assert.False(t, Unavailable[LoadAvg]("x").IsAbsent())
}
