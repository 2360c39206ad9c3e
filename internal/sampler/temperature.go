package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Dicklesworthstone/srvmon/internal/model"
)

// Sensor chips checked in order on the desktop sensor table.
var cpuChips = []string{"coretemp", "k10temp", "zenpower", "cpu_thermal"}

func sensorTableTemp(h Host) func(context.Context) (model.Temperature, error) {
	return func(ctx context.Context) (model.Temperature, error) {
		// gopsutil returns partial results alongside warnings
		temps, err := h.Temperatures(ctx)
		if len(temps) == 0 {
			if err != nil {
				return model.Temperature{}, err
			}
			return model.Temperature{}, fmt.Errorf("%w: empty sensor table", ErrNoSensor)
		}
		for _, chip := range cpuChips {
			for _, t := range temps {
				if strings.HasPrefix(strings.ToLower(t.SensorKey), chip) {
					return model.Temperature{Celsius: t.Temperature}, nil
				}
			}
		}
		return model.Temperature{}, fmt.Errorf("%w: no cpu chip among %d sensors", ErrNoSensor, len(temps))
	}
}

func thermalNodeTemp(h Host, path string) func(context.Context) (model.Temperature, error) {
	return func(context.Context) (model.Temperature, error) {
		b, err := h.ReadFile(path)
		if err != nil {
			return model.Temperature{}, err
		}
		milli, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
		if err != nil {
			return model.Temperature{}, fmt.Errorf("%s: %w", path, err)
		}
		return model.Temperature{Celsius: milli / 1000}, nil
	}
}

// hardwareMonitorTemp gives up on the sensor table after timeout.
func hardwareMonitorTemp(h Host, timeout time.Duration) func(context.Context) (model.Temperature, error) {
	return func(ctx context.Context) (model.Temperature, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		sensors, err := h.HardwareMonitor(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			return model.Temperature{}, fmt.Errorf("hardware monitor: timed out after %s", timeout)
		}
		if err != nil {
			return model.Temperature{}, err
		}
		return pickCPUSensor(sensors)
	}
}

func pickCPUSensor(sensors []HWSensor) (model.Temperature, error) {
	for _, s := range sensors {
		if s.SensorType != "Temperature" || !strings.Contains(strings.ToLower(s.Name), "cpu") {
			continue
		}
		if math.IsNaN(s.Value) {
			continue
		}
		return model.Temperature{Celsius: s.Value}, nil
	}
	return model.Temperature{}, fmt.Errorf("%w: no cpu temperature in hardware monitor", ErrNoSensor)
}
