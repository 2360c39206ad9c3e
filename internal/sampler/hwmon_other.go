//go:build !windows

package sampler

import (
	"context"
	"fmt"
)

func queryHardwareMonitor(context.Context) ([]HWSensor, error) {
	return nil, fmt.Errorf("%w: hardware monitor requires windows", ErrNoSensor)
}
