// Package sampler builds one Snapshot per tick from the sensor adapters
// that apply to the current platform profile.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/srvmon/internal/model"
	"github.com/Dicklesworthstone/srvmon/internal/platform"
)

// Options tune sampling independently of the platform.
type Options struct {
	CPUWindow    time.Duration // per-core utilisation measurement window
	GPU          bool          // allow accelerator queries where the profile has them
	QueryTimeout time.Duration // bound on sensor queries that take no deadline of their own
}

// DefaultOptions matches the CLI defaults.
func DefaultOptions() Options {
	return Options{CPUWindow: 200 * time.Millisecond, GPU: true, QueryTimeout: 2 * time.Second}
}

// Sampler is the snapshot builder. It holds no state between ticks beyond
// the adapters chosen at construction.
type Sampler struct {
	profile platform.Profile
	log     *slog.Logger
	now     func() time.Time

	perCore  Adapter[[]float64]
	cores    Adapter[int]
	threads  Adapter[int]
	cpuModel Adapter[string]
	cpuTemp  Adapter[model.Temperature]
	gpus     Adapter[[]model.GPU]
	memory   Adapter[model.Memory]
	storage  Adapter[[]model.Partition]
	network  Adapter[model.Network]
	load     Adapter[model.LoadAvg]
	users    Adapter[[]string]
}

// New selects adapters for p.
func New(p platform.Profile, h Host, opts Options, log *slog.Logger) *Sampler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.CPUWindow <= 0 {
		opts.CPUWindow = DefaultOptions().CPUWindow
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultOptions().QueryTimeout
	}

	s := &Sampler{
		profile:  p,
		log:      log,
		now:      time.Now,
		perCore:  guard("cpu.percent", log, perCorePercent(h, opts.CPUWindow)),
		cores:    guard("cpu.cores", log, coreCount(h, false)),
		threads:  guard("cpu.threads", log, coreCount(h, true)),
		cpuModel: guard("cpu.model", log, cpuModel(h, p.ModelQuery)),
		memory:   guard("memory", log, memory(h)),
		storage:  guard("storage", log, storage(h, p)),
		network:  guard("network", log, network(h)),
		users:    guard("users", log, activeUsers(h)),
	}

	switch p.Temperature {
	case platform.ThermalNode:
		s.cpuTemp = guard("cpu.temperature", log, thermalNodeTemp(h, p.ThermalNode))
	case platform.HardwareMonitor:
		s.cpuTemp = guard("cpu.temperature", log, hardwareMonitorTemp(h, opts.QueryTimeout))
	default:
		s.cpuTemp = guard("cpu.temperature", log, sensorTableTemp(h))
	}

	if p.GPU && opts.GPU {
		s.gpus = guard("gpu", log, queryGPUs(h))
	} else {
		s.gpus = fixed(model.Available([]model.GPU{}))
	}

	if p.Load {
		s.load = guard("load", log, loadAvg(h))
	} else {
		s.load = fixed(model.Absent[model.LoadAvg]("not supported on " + p.Kind.String()))
	}
	return s
}

// Profile returns the profile the sampler was built for.
func (s *Sampler) Profile() platform.Profile { return s.profile }

// Sample queries every active adapter once. It always returns a complete
// Snapshot; individual fields carry their own unavailability.
func (s *Sampler) Sample(ctx context.Context) model.Snapshot {
	snap := model.Snapshot{Timestamp: s.now()}

	snap.CPU.Threads = s.threads.Sample(ctx)
	snap.CPU.Cores = s.cores.Sample(ctx)
	snap.CPU.PerCore = s.perCore.Sample(ctx)
	snap.CPU.Model = s.cpuModel.Sample(ctx)
	snap.CPU.Temperature = s.cpuTemp.Sample(ctx)
	snap.GPUs = s.gpus.Sample(ctx)
	snap.Memory = s.memory.Sample(ctx)
	snap.Storage = s.storage.Sample(ctx)
	snap.Network = s.network.Sample(ctx)
	snap.Load = s.load.Sample(ctx)
	snap.Users = s.users.Sample(ctx)

	snap.CPU.PerCore = s.checkCoreCount(snap.CPU.PerCore, snap.CPU.Threads)
	return snap
}

// checkCoreCount enforces one percent per logical core. The count sampled
// this tick wins over the startup count.
func (s *Sampler) checkCoreCount(perCore model.Reading[[]float64], threads model.Reading[int]) model.Reading[[]float64] {
	pcts, ok := perCore.Get()
	if !ok {
		return perCore
	}
	want, ok := threads.Get()
	if !ok {
		want = s.profile.LogicalCores
	}
	if want > 0 && len(pcts) != want {
		reason := fmt.Sprintf("got %d per-core readings for %d logical cores", len(pcts), want)
		s.log.Debug("sensor unavailable", "sensor", "cpu.percent", "err", reason)
		return model.Unavailable[[]float64](reason)
	}
	return perCore
}
