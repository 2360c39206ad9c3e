// Package present maps a Snapshot onto ordered display rows. Every function
// here is pure: the same Snapshot always yields the same rows.
package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dicklesworthstone/srvmon/internal/model"
)

// NA is the placeholder for any value that could not be read.
const NA = "N/A"

// BarWidth is the number of glyph units in a usage bar.
const BarWidth = 20

const (
	barFill  = "█"
	barEmpty = " "
)

// Row is one table line: Component, Info, Usage, Graph.
type Row struct {
	Component string
	Info      string
	Usage     string
	Graph     string
}

// Columns are the table headings, in Row field order.
var Columns = [4]string{"Component", "Info", "Usage", "Graph"}

// Cells returns the row as a slice in column order.
func (r Row) Cells() []string { return []string{r.Component, r.Info, r.Usage, r.Graph} }

// Filled is the number of filled bar units for percent p:
// floor(p/5) clamped to [0, BarWidth]; NaN fills nothing.
func Filled(p float64) int {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	n := math.Floor(p / 5)
	if n >= BarWidth {
		return BarWidth
	}
	return int(n)
}

// Bar renders a bracketed fixed-width usage bar.
func Bar(p float64) string {
	return "[" + glyphs(p) + "]"
}

func glyphs(p float64) string {
	n := Filled(p)
	return strings.Repeat(barFill, n) + strings.Repeat(barEmpty, BarWidth-n)
}

// Percent formats a usage percentage with two decimals.
func Percent(p float64) string { return fmt.Sprintf("%.2f%%", p) }

// Temperature formats Celsius alongside the derived Fahrenheit.
func Temperature(t model.Temperature) string {
	return fmt.Sprintf("%.1f°C / %.1f°F", t.Celsius, t.Fahrenheit())
}

// GB formats a binary-gigabyte quantity.
func GB(v float64) string { return fmt.Sprintf("%.2f GB", v) }

// MB formats a binary-megabyte quantity.
func MB(v float64) string { return fmt.Sprintf("%.2f MB", v) }

// Mean is the arithmetic mean; ok is false for an empty slice.
func Mean(vs []float64) (mean float64, ok bool) {
	if len(vs) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs)), true
}

// Header returns the summary lines shown above the table.
func Header(s model.Snapshot) []string {
	lines := []string{headerLine("CPU Model", textOr(s.CPU.Model))}
	gpus, ok := s.GPUs.Get()
	if !ok {
		return append(lines, headerLine("GPU Model", NA))
	}
	for i, g := range gpus {
		label := ""
		if i == 0 {
			label = "GPU Model"
		}
		lines = append(lines, headerLine(label, g.Model))
	}
	return lines
}

func headerLine(label, value string) string {
	return fmt.Sprintf("%-25s: %s", label, value)
}

// Rows maps a Snapshot to its display rows.
func Rows(s model.Snapshot) []Row {
	var rows []Row
	rows = appendCPU(rows, s.CPU)
	rows = appendGPUs(rows, s.GPUs)
	rows = appendMemory(rows, s.Memory)
	rows = append(rows, temperatureRow("CPU Temperature", s.CPU.Temperature))
	rows = appendStorage(rows, s.Storage)
	rows = appendLoad(rows, s.Load)
	rows = appendNetwork(rows, s.Network)
	rows = appendUsers(rows, s.Users)
	return rows
}

func appendCPU(rows []Row, c model.CPU) []Row {
	cores := intOr(c.Cores)
	threads := intOr(c.Threads)
	rows = append(rows, Row{Component: "Cores", Usage: fmt.Sprintf("%s (Threads: %s)", cores, threads)})

	pcts, ok := c.PerCore.Get()
	if !ok {
		return append(rows, Row{Component: "Overall CPU Usage", Info: NA})
	}
	for i, p := range pcts {
		rows = append(rows, percentRow(fmt.Sprintf("Core %d", i+1), p))
	}
	if mean, ok := Mean(pcts); ok {
		rows = append(rows, percentRow("Overall CPU Usage", mean))
	}
	return rows
}

func appendGPUs(rows []Row, r model.Reading[[]model.GPU]) []Row {
	gpus, ok := r.Get()
	if !ok {
		return append(rows, Row{Component: "GPU", Info: NA})
	}
	for i, g := range gpus {
		prefix := fmt.Sprintf("GPU %d", i+1)
		rows = append(rows, Row{Component: prefix + " Model", Usage: g.Model})
		if u, ok := g.Utilization.Get(); ok {
			rows = append(rows, percentRow(prefix+" Usage", u))
		} else {
			rows = append(rows, Row{Component: prefix + " Usage", Info: NA})
		}
		rows = append(rows, temperatureRow(prefix+" Temperature", g.Temperature))
	}
	return rows
}

func appendMemory(rows []Row, r model.Reading[model.Memory]) []Row {
	m, ok := r.Get()
	if !ok {
		return append(rows,
			Row{Component: "Total RAM", Usage: NA},
			Row{Component: "Used RAM", Info: NA},
		)
	}
	return append(rows,
		Row{Component: "Total RAM", Usage: GB(m.TotalGB)},
		percentRow("Used RAM", m.UsedPercent),
	)
}

func appendStorage(rows []Row, r model.Reading[[]model.Partition]) []Row {
	parts, ok := r.Get()
	if !ok {
		return append(rows, Row{Component: "Storage Usage", Info: NA})
	}
	for _, p := range parts {
		u, ok := p.Usage.Get()
		if !ok {
			rows = append(rows,
				Row{Component: p.Label + " Storage Usage", Info: NA},
				Row{Component: p.Label + " Total Storage", Usage: NA},
				Row{Component: p.Label + " Used Storage", Usage: NA},
				Row{Component: p.Label + " Available Storage", Usage: NA},
			)
			continue
		}
		rows = append(rows,
			percentRow(p.Label+" Storage Usage", u.UsedPercent),
			Row{Component: p.Label + " Total Storage", Usage: GB(u.TotalGB)},
			Row{Component: p.Label + " Used Storage", Usage: GB(u.UsedGB)},
			Row{Component: p.Label + " Available Storage", Usage: GB(u.FreeGB)},
		)
	}
	return rows
}

// appendLoad omits the row entirely where load average does not exist.
func appendLoad(rows []Row, r model.Reading[model.LoadAvg]) []Row {
	if r.IsAbsent() {
		return rows
	}
	l, ok := r.Get()
	if !ok {
		return append(rows, Row{Component: "Load Average", Info: NA})
	}
	return append(rows, Row{Component: "Load Average", Info: fmt.Sprintf("%.2f %.2f %.2f", l.Load1, l.Load5, l.Load15)})
}

func appendNetwork(rows []Row, r model.Reading[model.Network]) []Row {
	n, ok := r.Get()
	if !ok {
		return append(rows,
			Row{Component: "Network Sent", Info: NA},
			Row{Component: "Network Received", Info: NA},
		)
	}
	return append(rows,
		Row{Component: "Network Sent", Info: MB(n.SentMB)},
		Row{Component: "Network Received", Info: MB(n.ReceivedMB)},
	)
}

func appendUsers(rows []Row, r model.Reading[[]string]) []Row {
	users, ok := r.Get()
	if !ok {
		return append(rows, Row{Component: "Active Users", Info: NA})
	}
	return append(rows, Row{Component: "Active Users", Info: strings.Join(users, ", ")})
}

func percentRow(label string, p float64) Row {
	return Row{Component: label, Info: Percent(p), Graph: Bar(p)}
}

func temperatureRow(label string, r model.Reading[model.Temperature]) Row {
	t, ok := r.Get()
	if !ok {
		return Row{Component: label, Info: NA}
	}
	return Row{Component: label, Info: Temperature(t), Graph: glyphs(t.Celsius)}
}

func intOr(r model.Reading[int]) string {
	if v, ok := r.Get(); ok {
		return fmt.Sprint(v)
	}
	return NA
}

func textOr(r model.Reading[string]) string {
	if v, ok := r.Get(); ok {
		return v
	}
	return NA
}
