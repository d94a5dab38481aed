// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build linux

package metrics

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// ioCollector surfaces the io counters from /proc/self/io that the
// default process collector leaves out. See proc_pid_io(5).
type ioCollector struct {
	descs map[string]*prometheus.Desc // keyed by /proc/self/io field name
}

func newIOCollector() *ioCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", name),
			help, nil, nil,
		)
	}
	return &ioCollector{
		descs: map[string]*prometheus.Desc{
			"syscr":       desc("read_syscalls_total", "Count of read syscalls issued by the process."),
			"syscw":       desc("write_syscalls_total", "Count of write syscalls issued by the process."),
			"read_bytes":  desc("read_bytes_total", "Bytes fetched from the storage layer."),
			"write_bytes": desc("write_bytes_total", "Bytes sent to the storage layer."),
		},
	}
}

func (c *ioCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

func (c *ioCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := readProcIO()
	if err != nil {
		logger.Warn("unable to read io stats", "err", err)
		return
	}
	for field, desc := range c.descs {
		if v, ok := stats[field]; ok {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v))
		}
	}
}

// readProcIO parses /proc/self/io into field/value pairs.
func readProcIO() (map[string]int64, error) {
	file, err := os.Open("/proc/self/io")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stats := make(map[string]int64)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		field, value, found := strings.Cut(scanner.Text(), ": ")
		if !found {
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		stats[field] = n
	}
	return stats, scanner.Err()
}

var ioCollectorOnce sync.Once

func registerIOCollector() {
	ioCollectorOnce.Do(func() {
		prometheus.MustRegister(newIOCollector())
	})
}
