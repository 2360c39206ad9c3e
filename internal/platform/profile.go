// Package platform selects the host class once at startup and describes
// which sensors and enumeration strategies apply to it.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// ErrUnsupportedPlatform is returned when the host class cannot be determined.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Kind is the host class.
type Kind int

const (
	DesktopLinux Kind = iota
	EmbeddedLinux
	Windows
)

func (k Kind) String() string {
	switch k {
	case DesktopLinux:
		return "desktop-linux"
	case EmbeddedLinux:
		return "embedded-linux"
	case Windows:
		return "windows"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the --platform values. "auto" and "" return ok=false.
func ParseKind(s string) (k Kind, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return 0, false, nil
	case "desktop", "desktop-linux", "linux":
		return DesktopLinux, true, nil
	case "embedded", "embedded-linux", "pi", "raspberrypi":
		return EmbeddedLinux, true, nil
	case "windows":
		return Windows, true, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
}

// StorageStrategy selects how partitions are enumerated.
type StorageStrategy int

const (
	RootOnly StorageStrategy = iota
	AllPartitions
)

// TempSource is where the CPU temperature comes from.
type TempSource int

const (
	SensorTable     TempSource = iota // gopsutil sensor table (coretemp, k10temp, ...)
	ThermalNode                       // single sysfs thermal zone file
	HardwareMonitor                   // OpenHardwareMonitor via WMI
)

// ModelQuery is the fallback command for the CPU model string.
type ModelQuery int

const (
	Lscpu ModelQuery = iota
	WMIC
)

const defaultThermalNode = "/sys/class/thermal/thermal_zone0/temp"

// Profile is fixed for the lifetime of the process.
type Profile struct {
	Kind         Kind
	Storage      StorageStrategy
	RootMount    string
	Temperature  TempSource
	ThermalNode  string
	GPU          bool
	Load         bool
	ModelQuery   ModelQuery
	LogicalCores int // detected at startup; 0 when the count could not be read
}

// ForKind returns the sensor layout for a host class.
func ForKind(k Kind) Profile {
	switch k {
	case EmbeddedLinux:
		return Profile{
			Kind:        k,
			Storage:     RootOnly,
			RootMount:   "/",
			Temperature: ThermalNode,
			ThermalNode: defaultThermalNode,
			Load:        true,
			ModelQuery:  Lscpu,
		}
	case Windows:
		return Profile{
			Kind:        k,
			Storage:     AllPartitions,
			RootMount:   `C:\`,
			Temperature: HardwareMonitor,
			GPU:         true,
			ModelQuery:  WMIC,
		}
	default:
		return Profile{
			Kind:        DesktopLinux,
			Storage:     RootOnly,
			RootMount:   "/",
			Temperature: SensorTable,
			GPU:         true,
			Load:        true,
			ModelQuery:  Lscpu,
		}
	}
}

// Probe exposes the host facts used for detection.
type Probe struct {
	GOOS     string
	ReadFile func(path string) ([]byte, error)
	Platform func(ctx context.Context) (string, error)
	Logical  func(ctx context.Context) (int, error)
}

// SystemProbe inspects the running host.
func SystemProbe() Probe {
	return Probe{
		GOOS:     runtime.GOOS,
		ReadFile: os.ReadFile,
		Platform: func(ctx context.Context) (string, error) {
			info, err := host.InfoWithContext(ctx)
			if err != nil {
				return "", err
			}
			return info.Platform, nil
		},
		Logical: func(ctx context.Context) (int, error) {
			return cpu.CountsWithContext(ctx, true)
		},
	}
}

const deviceTreeModel = "/proc/device-tree/model"

// Detect picks the host class from the probe. A non-nil override skips
// detection but still records the logical core count.
func Detect(ctx context.Context, p Probe, override *Kind) (Profile, error) {
	var kind Kind
	if override != nil {
		kind = *override
	} else {
		var err error
		kind, err = detectKind(ctx, p)
		if err != nil {
			return Profile{}, err
		}
	}

	prof := ForKind(kind)
	if p.Logical != nil {
		if n, err := p.Logical(ctx); err == nil && n > 0 {
			prof.LogicalCores = n
		}
	}
	return prof, nil
}

func detectKind(ctx context.Context, p Probe) (Kind, error) {
	switch p.GOOS {
	case "windows":
		return Windows, nil
	case "linux":
		if isRaspberryPi(ctx, p) {
			return EmbeddedLinux, nil
		}
		return DesktopLinux, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p.GOOS)
}

func isRaspberryPi(ctx context.Context, p Probe) bool {
	if p.ReadFile != nil {
		if b, err := p.ReadFile(deviceTreeModel); err == nil {
			if strings.Contains(string(b), "Raspberry Pi") {
				return true
			}
		}
	}
	if p.Platform != nil {
		if name, err := p.Platform(ctx); err == nil && strings.EqualFold(name, "raspbian") {
			return true
		}
	}
	return false
}
