package sampler

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// HWSensor is one hardware-monitor sensor row.
type HWSensor struct {
	Name       string
	SensorType string
	Value      float64
}

// Host is the table of OS data sources the adapters read from.
// Tests replace individual entries; a nil entry makes its adapter unavailable.
type Host struct {
	PerCorePercent  func(ctx context.Context, window time.Duration) ([]float64, error)
	Counts          func(ctx context.Context, logical bool) (int, error)
	CPUInfo         func(ctx context.Context) ([]cpu.InfoStat, error)
	VirtualMemory   func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage       func(ctx context.Context, path string) (*disk.UsageStat, error)
	Partitions      func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	NetCounters     func(ctx context.Context) ([]net.IOCountersStat, error)
	LoadAvg         func(ctx context.Context) (*load.AvgStat, error)
	Users           func(ctx context.Context) ([]host.UserStat, error)
	Temperatures    func(ctx context.Context) ([]host.TemperatureStat, error)
	HardwareMonitor func(ctx context.Context) ([]HWSensor, error)
	ReadFile        func(path string) ([]byte, error)
	Run             func(ctx context.Context, name string, args ...string) (string, error)
}

// SystemHost reads the local machine through gopsutil. External commands
// are killed after cmdTimeout.
func SystemHost(cmdTimeout time.Duration) Host {
	return Host{
		PerCorePercent: func(ctx context.Context, window time.Duration) ([]float64, error) {
			return cpu.PercentWithContext(ctx, window, true)
		},
		Counts:        cpu.CountsWithContext,
		CPUInfo:       cpu.InfoWithContext,
		VirtualMemory: mem.VirtualMemoryWithContext,
		DiskUsage:     disk.UsageWithContext,
		Partitions:    disk.PartitionsWithContext,
		NetCounters: func(ctx context.Context) ([]net.IOCountersStat, error) {
			return net.IOCountersWithContext(ctx, false)
		},
		LoadAvg:         load.AvgWithContext,
		Users:           host.UsersWithContext,
		Temperatures:    host.SensorsTemperaturesWithContext,
		HardwareMonitor: queryHardwareMonitor,
		ReadFile:        os.ReadFile,
		Run: func(ctx context.Context, name string, args ...string) (string, error) {
			return runCmd(ctx, cmdTimeout, name, args...)
		},
	}
}
