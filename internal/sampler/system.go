package sampler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/srvmon/internal/model"
	"github.com/Dicklesworthstone/srvmon/internal/platform"
)

func memory(h Host) func(context.Context) (model.Memory, error) {
	return func(ctx context.Context) (model.Memory, error) {
		vm, err := h.VirtualMemory(ctx)
		if err != nil {
			return model.Memory{}, err
		}
		return model.Memory{
			TotalGB:     model.Round2(model.BytesToGB(vm.Total)),
			UsedPercent: vm.UsedPercent,
		}, nil
	}
}

func storage(h Host, p platform.Profile) func(context.Context) ([]model.Partition, error) {
	return func(ctx context.Context) ([]model.Partition, error) {
		if p.Storage == platform.RootOnly {
			part := model.Partition{Device: p.RootMount, Mountpoint: p.RootMount, Label: "Main"}
			usage, err := diskUsage(ctx, h, p.RootMount)
			if err != nil {
				return nil, err
			}
			part.Usage = model.Available(usage)
			return []model.Partition{part}, nil
		}

		parts, err := h.Partitions(ctx, true)
		if err != nil {
			return nil, err
		}
		out := make([]model.Partition, 0, len(parts))
		for _, ps := range parts {
			part := model.Partition{
				Device:     ps.Device,
				Mountpoint: ps.Mountpoint,
				Label:      partitionLabel(ps.Device, ps.Mountpoint),
			}
			// an empty card reader fails here; keep the row, mark it unavailable
			if usage, err := diskUsage(ctx, h, ps.Mountpoint); err != nil {
				part.Usage = model.Unavailable[model.DiskUsage](err.Error())
			} else {
				part.Usage = model.Available(usage)
			}
			out = append(out, part)
		}
		return out, nil
	}
}

func diskUsage(ctx context.Context, h Host, path string) (model.DiskUsage, error) {
	u, err := h.DiskUsage(ctx, path)
	if err != nil {
		return model.DiskUsage{}, err
	}
	return model.DiskUsage{
		TotalGB:     model.Round2(model.BytesToGB(u.Total)),
		UsedGB:      model.Round2(model.BytesToGB(u.Used)),
		FreeGB:      model.Round2(model.BytesToGB(u.Free)),
		UsedPercent: u.UsedPercent,
	}, nil
}

// partitionLabel renders "C:\ (C)" for drive letters, else the mountpoint.
func partitionLabel(device, mountpoint string) string {
	if drive, rest, ok := strings.Cut(device, ":"); ok && drive != "" && !strings.HasPrefix(device, "/") {
		if rest == "" {
			device += `\`
		}
		return fmt.Sprintf("%s (%s)", device, drive)
	}
	if mountpoint != "" {
		return mountpoint
	}
	return device
}

func network(h Host) func(context.Context) (model.Network, error) {
	return func(ctx context.Context) (model.Network, error) {
		counters, err := h.NetCounters(ctx)
		if err != nil {
			return model.Network{}, err
		}
		if len(counters) == 0 {
			return model.Network{}, errors.New("no network counters")
		}
		return model.Network{
			SentMB:     model.Round2(model.BytesToMB(counters[0].BytesSent)),
			ReceivedMB: model.Round2(model.BytesToMB(counters[0].BytesRecv)),
		}, nil
	}
}

func loadAvg(h Host) func(context.Context) (model.LoadAvg, error) {
	return func(ctx context.Context) (model.LoadAvg, error) {
		avg, err := h.LoadAvg(ctx)
		if err != nil {
			return model.LoadAvg{}, err
		}
		return model.LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
	}
}

// activeUsers dedups session owners by name, keeping first-seen order.
func activeUsers(h Host) func(context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		sessions, err := h.Users(ctx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(sessions))
		names := make([]string, 0, len(sessions))
		for _, s := range sessions {
			if s.User == "" || seen[s.User] {
				continue
			}
			seen[s.User] = true
			names = append(names, s.User)
		}
		return names, nil
	}
}
