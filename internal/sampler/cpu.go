package sampler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dicklesworthstone/srvmon/internal/platform"
)

func perCorePercent(h Host, window time.Duration) func(context.Context) ([]float64, error) {
	return func(ctx context.Context) ([]float64, error) {
		pcts, err := h.PerCorePercent(ctx, window)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(pcts))
		for i, p := range pcts {
			if math.IsNaN(p) {
				return nil, fmt.Errorf("core %d: invalid percent", i)
			}
			out[i] = math.Min(math.Max(p, 0), 100)
		}
		return out, nil
	}
}

func coreCount(h Host, logical bool) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		n, err := h.Counts(ctx, logical)
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			return 0, errors.New("core count not reported")
		}
		return n, nil
	}
}

func cpuModel(h Host, q platform.ModelQuery) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if h.CPUInfo != nil {
			if infos, err := h.CPUInfo(ctx); err == nil && len(infos) > 0 {
				if name := strings.TrimSpace(infos[0].ModelName); name != "" {
					return name, nil
				}
			}
		}
		switch q {
		case platform.WMIC:
			out, err := h.Run(ctx, "wmic", "cpu", "get", "caption")
			if err != nil {
				return "", err
			}
			return parseWMICCaption(out)
		default:
			out, err := h.Run(ctx, "lscpu")
			if err != nil {
				return "", err
			}
			return parseLscpuModel(out)
		}
	}
}

func parseLscpuModel(out string) (string, error) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.TrimSpace(key) == "Model name" {
			if v := strings.TrimSpace(val); v != "" {
				return v, nil
			}
		}
	}
	return "", errors.New("lscpu: no model name")
}

// parseWMICCaption takes the first value line after the "Caption" header.
func parseWMICCaption(out string) (string, error) {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return "", errors.New("wmic: no caption")
	}
	return lines[1], nil
}
