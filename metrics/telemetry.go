// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a thin facade over the process meter backend.
// Meters stay no-ops until InitializePrometheusMetrics switches the
// backend, so importing packages may declare meters freely without
// deciding whether the process exports them.
package metrics

import (
	"net/http"
	"sync"
)

// backend builds the meters handed out by the package-level constructors.
var backend Backend = nopBackend{}

// Backend is the meter factory behind the facade.
type Backend interface {
	Counter(name string) CountMeter
	CounterVec(name string, labels []string) CountVecMeter
	Gauge(name string) GaugeMeter
	GaugeVec(name string, labels []string) GaugeVecMeter
	Histogram(name string, buckets []int64) HistogramMeter
	HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	Handler() http.Handler
}

// HTTPHandler returns the handler serving the collected metrics.
func HTTPHandler() http.Handler {
	return backend.Handler()
}

// BucketHTTPReqs spans request latencies from sub-millisecond to ten
// seconds, in milliseconds.
var BucketHTTPReqs = []int64{
	0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
	150, 200, 300, 400, 500, 750, 1000,
	1500, 2000, 3000, 4000, 5000, 10000,
}

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter partitioned by label values.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a value that moves both ways.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// GaugeVecMeter is a gauge partitioned by label values.
type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
	SetWithLabel(int64, map[string]string)
}

// HistogramMeter aggregates reported values into buckets.
type HistogramMeter interface {
	Observe(int64)
}

// HistogramVecMeter is a histogram partitioned by label values.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// Counter returns the named counter.
func Counter(name string) CountMeter {
	return backend.Counter(name)
}

// CounterVec returns the named counter with labels.
func CounterVec(name string, labels []string) CountVecMeter {
	return backend.CounterVec(name, labels)
}

// Gauge returns the named gauge.
func Gauge(name string) GaugeMeter {
	return backend.Gauge(name)
}

// GaugeVec returns the named gauge with labels.
func GaugeVec(name string, labels []string) GaugeVecMeter {
	return backend.GaugeVec(name, labels)
}

// Histogram returns the named histogram.
func Histogram(name string, buckets []int64) HistogramMeter {
	return backend.Histogram(name, buckets)
}

// HistogramVec returns the named histogram with labels.
func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return backend.HistogramVec(name, labels, buckets)
}

// LazyLoad defers meter creation to first use. Package-level meter vars
// would otherwise pin the backend chosen at import time.
func LazyLoad[T any](create func() T) func() T {
	var (
		once  sync.Once
		meter T
	)
	return func() T {
		once.Do(func() { meter = create() })
		return meter
	}
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return GaugeVec(name, labels) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}

// nopBackend hands out meters that drop every report.
type nopBackend struct{}

func (nopBackend) Counter(string) CountMeter                 { return nopMeter{} }
func (nopBackend) CounterVec(string, []string) CountVecMeter { return nopMeter{} }
func (nopBackend) Gauge(string) GaugeMeter                   { return nopMeter{} }
func (nopBackend) GaugeVec(string, []string) GaugeVecMeter   { return nopMeter{} }
func (nopBackend) Histogram(string, []int64) HistogramMeter  { return nopMeter{} }

func (nopBackend) HistogramVec(string, []string, []int64) HistogramVecMeter {
	return nopMeter{}
}

func (nopBackend) Handler() http.Handler { return http.NotFoundHandler() }

type nopMeter struct{}

func (nopMeter) Add(int64)                                  {}
func (nopMeter) Set(int64)                                  {}
func (nopMeter) Observe(int64)                              {}
func (nopMeter) AddWithLabel(int64, map[string]string)      {}
func (nopMeter) SetWithLabel(int64, map[string]string)      {}
func (nopMeter) ObserveWithLabels(int64, map[string]string) {}
