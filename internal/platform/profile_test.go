package platform

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProbe(goos, model, plat string, cores int) Probe {
	return Probe{
		GOOS: goos,
		ReadFile: func(path string) ([]byte, error) {
			if path == deviceTreeModel && model != "" {
				return []byte(model + "\x00"), nil
			}
			return nil, os.ErrNotExist
		},
		Platform: func(context.Context) (string, error) {
			if plat == "" {
				return "", errors.New("no host info")
			}
			return plat, nil
		},
		Logical: func(context.Context) (int, error) {
			if cores == 0 {
				return 0, errors.New("no counts")
			}
			return cores, nil
		},
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		probe Probe
		want  Kind
		cores int
	}{
		{"desktop linux", fakeProbe("linux", "", "ubuntu", 16), DesktopLinux, 16},
		{"pi by device tree", fakeProbe("linux", "Raspberry Pi 4 Model B Rev 1.4", "debian", 4), EmbeddedLinux, 4},
		{"pi by platform name", fakeProbe("linux", "", "raspbian", 4), EmbeddedLinux, 4},
		{"linux with no host info", fakeProbe("linux", "", "", 8), DesktopLinux, 8},
		{"windows", fakeProbe("windows", "", "", 12), Windows, 12},
		{"core count unavailable", fakeProbe("linux", "", "fedora", 0), DesktopLinux, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof, err := Detect(context.Background(), tt.probe, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prof.Kind)
			assert.Equal(t, tt.cores, prof.LogicalCores)
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	_, err := Detect(context.Background(), fakeProbe("plan9", "", "", 1), nil)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestDetectOverride(t *testing.T) {
	k := EmbeddedLinux
	prof, err := Detect(context.Background(), fakeProbe("darwin", "", "", 4), &k)
	require.NoError(t, err)
	assert.Equal(t, EmbeddedLinux, prof.Kind)
	assert.Equal(t, 4, prof.LogicalCores)
}

func TestForKind(t *testing.T) {
	d := ForKind(DesktopLinux)
	assert.Equal(t, RootOnly, d.Storage)
	assert.Equal(t, "/", d.RootMount)
	assert.Equal(t, SensorTable, d.Temperature)
	assert.True(t, d.GPU)
	assert.True(t, d.Load)

	e := ForKind(EmbeddedLinux)
	assert.Equal(t, RootOnly, e.Storage)
	assert.Equal(t, ThermalNode, e.Temperature)
	assert.Equal(t, "/sys/class/thermal/thermal_zone0/temp", e.ThermalNode)
	assert.False(t, e.GPU)

	w := ForKind(Windows)
	assert.Equal(t, AllPartitions, w.Storage)
	assert.Equal(t, HardwareMonitor, w.Temperature)
	assert.Equal(t, WMIC, w.ModelQuery)
	assert.False(t, w.Load)
}

func TestParseKind(t *testing.T) {
	k, ok, err := ParseKind("auto")
	require.NoError(t, err)
	assert.False(t, ok)

	k, ok, err = ParseKind("Embedded")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, EmbeddedLinux, k)

	_, _, err = ParseKind("amiga")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "desktop-linux", DesktopLinux.String())
	assert.Equal(t, "embedded-linux", EmbeddedLinux.String())
	assert.Equal(t, "windows", Windows.String())
}
