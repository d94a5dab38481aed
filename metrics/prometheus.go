// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/stakepool/log"
)

const namespace = "stakepool_metrics"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the backend to prometheus.
// Meters created before the switch keep their no-op implementation,
// so it runs ahead of any meter use. Repeated calls have no effect.
func InitializePrometheusMetrics() {
	if _, ok := backend.(*promBackend); !ok {
		backend = &promBackend{}
		registerIOCollector()
	}
}

// promBackend caches meters per kind, keyed by name.
type promBackend struct {
	counters      sync.Map
	counterVecs   sync.Map
	gauges        sync.Map
	gaugeVecs     sync.Map
	histograms    sync.Map
	histogramVecs sync.Map
}

// memoize returns the meter cached under name, building it on first use.
func memoize[T any](m *sync.Map, name string, build func() T) T {
	if cached, ok := m.Load(name); ok {
		return cached.(T)
	}
	meter, _ := m.LoadOrStore(name, build())
	return meter.(T)
}

func (b *promBackend) Counter(name string) CountMeter {
	return memoize(&b.counters, name, func() CountMeter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		register(c)
		return &promCounter{c}
	})
}

func (b *promBackend) CounterVec(name string, labels []string) CountVecMeter {
	return memoize(&b.counterVecs, name, func() CountVecMeter {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		register(c)
		return &promCounterVec{c}
	})
}

func (b *promBackend) Gauge(name string) GaugeMeter {
	return memoize(&b.gauges, name, func() GaugeMeter {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		register(g)
		return &promGauge{g}
	})
}

func (b *promBackend) GaugeVec(name string, labels []string) GaugeVecMeter {
	return memoize(&b.gaugeVecs, name, func() GaugeVecMeter {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		register(g)
		return &promGaugeVec{g}
	})
}

func (b *promBackend) Histogram(name string, buckets []int64) HistogramMeter {
	return memoize(&b.histograms, name, func() HistogramMeter {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
		register(h)
		return &promHistogram{h}
	})
}

func (b *promBackend) HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return memoize(&b.histogramVecs, name, func() HistogramVecMeter {
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		}, labels)
		register(h)
		return &promHistogramVec{h}
	})
}

func (b *promBackend) Handler() http.Handler {
	return promhttp.Handler()
}

func register(meter prometheus.Collector) {
	if err := prometheus.Register(meter); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
}

// floatBuckets converts bucket bounds for the prometheus API. An empty
// slice leaves bucketing to the prometheus defaults.
func floatBuckets(buckets []int64) []float64 {
	out := make([]float64, len(buckets))
	for i, bound := range buckets {
		out[i] = float64(bound)
	}
	return out
}

type promCounter struct {
	c prometheus.Counter
}

func (m *promCounter) Add(v int64) { m.c.Add(float64(v)) }

type promCounterVec struct {
	c *prometheus.CounterVec
}

func (m *promCounterVec) AddWithLabel(v int64, labels map[string]string) {
	m.c.With(labels).Add(float64(v))
}

type promGauge struct {
	g prometheus.Gauge
}

func (m *promGauge) Add(v int64) { m.g.Add(float64(v)) }
func (m *promGauge) Set(v int64) { m.g.Set(float64(v)) }

type promGaugeVec struct {
	g *prometheus.GaugeVec
}

func (m *promGaugeVec) AddWithLabel(v int64, labels map[string]string) {
	m.g.With(labels).Add(float64(v))
}

func (m *promGaugeVec) SetWithLabel(v int64, labels map[string]string) {
	m.g.With(labels).Set(float64(v))
}

type promHistogram struct {
	h prometheus.Histogram
}

func (m *promHistogram) Observe(v int64) { m.h.Observe(float64(v)) }

type promHistogramVec struct {
	h *prometheus.HistogramVec
}

func (m *promHistogramVec) ObserveWithLabels(v int64, labels map[string]string) {
	m.h.With(labels).Observe(float64(v))
}
