//go:build windows

package sampler

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

const ohmNamespace = `root\OpenHardwareMonitor`

type ohmSensor struct {
	Name       string
	SensorType string
	Value      float32
}

// queryHardwareMonitor reads OpenHardwareMonitor's WMI sensor table. The WMI
// call has no context support, so it runs aside and is abandoned once ctx
// is done; callers must bound ctx.
func queryHardwareMonitor(ctx context.Context) ([]HWSensor, error) {
	type result struct {
		rows []ohmSensor
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		var rows []ohmSensor
		err := wmi.QueryNamespace(
			"SELECT Name, SensorType, Value FROM Sensor WHERE SensorType = 'Temperature'",
			&rows, ohmNamespace)
		ch <- result{rows, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		out := make([]HWSensor, 0, len(res.rows))
		for _, r := range res.rows {
			out = append(out, HWSensor{Name: r.Name, SensorType: r.SensorType, Value: float64(r.Value)})
		}
		return out, nil
	}
}
