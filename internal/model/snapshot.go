package model

import (
	"math"
	"time"
)

// Temperature is a sensor temperature. Fahrenheit is always derived.
type Temperature struct {
	Celsius float64
}

// Fahrenheit converts the Celsius value.
func (t Temperature) Fahrenheit() float64 { return t.Celsius*9/5 + 32 }

// CPU aggregates processor readings for one tick.
type CPU struct {
	PerCore     Reading[[]float64] // percent 0-100, logical core order
	Cores       Reading[int]       // physical
	Threads     Reading[int]       // logical
	Model       Reading[string]
	Temperature Reading[Temperature]
}

// GPU is a single accelerator in enumeration order.
type GPU struct {
	Index       int
	Model       string
	Utilization Reading[float64] // percent
	Temperature Reading[Temperature]
}

// Memory is virtual memory usage.
type Memory struct {
	TotalGB     float64
	UsedPercent float64
}

// DiskUsage is capacity of one mounted filesystem in binary GB.
type DiskUsage struct {
	TotalGB     float64
	UsedGB      float64
	FreeGB      float64
	UsedPercent float64
}

// Partition is one storage unit. Label disambiguates it in the table.
type Partition struct {
	Device     string
	Mountpoint string
	Label      string
	Usage      Reading[DiskUsage]
}

// Network holds cumulative counters since boot, not rates.
type Network struct {
	SentMB     float64
	ReceivedMB float64
}

// LoadAvg is the 1/5/15 minute run queue average.
type LoadAvg struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// Snapshot is one immutable point-in-time bundle of all sampled metrics.
// It is produced once per tick and discarded after mapping to rows.
type Snapshot struct {
	Timestamp time.Time
	CPU       CPU
	GPUs      Reading[[]GPU] // available and empty when no accelerator exists
	Memory    Reading[Memory]
	Storage   Reading[[]Partition]
	Network   Reading[Network]
	Load      Reading[LoadAvg]
	Users     Reading[[]string]
}

const (
	gib = 1024 * 1024 * 1024
	mib = 1024 * 1024
)

// BytesToGB converts bytes to binary gigabytes.
func BytesToGB(b uint64) float64 { return float64(b) / gib }

// BytesToMB converts bytes to binary megabytes.
func BytesToMB(b uint64) float64 { return float64(b) / mib }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
