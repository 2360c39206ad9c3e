package sampler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/srvmon/internal/model"
)

var nvidiaSMIArgs = []string{
	"--query-gpu=index,name,utilization.gpu,temperature.gpu",
	"--format=csv,noheader,nounits",
}

// queryGPUs returns one entry per NVIDIA device. No driver tooling, or no
// devices, is an empty result rather than an error.
func queryGPUs(h Host) func(context.Context) ([]model.GPU, error) {
	return func(ctx context.Context) ([]model.GPU, error) {
		out, err := h.Run(ctx, "nvidia-smi", nvidiaSMIArgs...)
		if errors.Is(err, ErrCommandNotFound) {
			return []model.GPU{}, nil
		}
		if strings.Contains(strings.ToLower(out), "no devices were found") {
			return []model.GPU{}, nil
		}
		if err != nil {
			return nil, err
		}
		return parseNvidiaSMI(out)
	}
}

// parseNvidiaSMI parses "index, name, utilization.gpu, temperature.gpu" rows.
func parseNvidiaSMI(out string) ([]model.GPU, error) {
	gpus := []model.GPU{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			return nil, fmt.Errorf("nvidia-smi: malformed row %q", line)
		}
		// names may contain commas; the last two fields are numeric
		n := len(parts)
		idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("nvidia-smi: bad index in %q", line)
		}
		name := strings.TrimSpace(strings.Join(parts[1:n-2], ","))

		gpu := model.GPU{
			Index:       idx,
			Model:       name,
			Utilization: parseSMIField(parts[n-2]),
		}
		if c, ok := parseSMIField(parts[n-1]).Get(); ok {
			gpu.Temperature = model.Available(model.Temperature{Celsius: c})
		} else {
			gpu.Temperature = model.Unavailable[model.Temperature]("temperature " + strings.TrimSpace(parts[n-1]))
		}
		gpus = append(gpus, gpu)
	}
	return gpus, nil
}

// parseSMIField treats "[N/A]", "[Not Supported]" and junk as unavailable.
func parseSMIField(s string) model.Reading[float64] {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "[") {
		return model.Unavailable[float64]("reported " + s)
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return model.Unavailable[float64](fmt.Sprintf("unparsable %q", s))
	}
	return model.Available(f)
}
