// Package prom exports index metrics to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/vmindex/index"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements index.Metrics with Prometheus counters and a gauge.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	lookups   *prometheus.CounterVec
	inserts   prometheus.Counter
	removes   prometheus.Counter
	finalized prometheus.Counter
	entries   prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "lookups_total",
				Help:        "Index lookups by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		inserts:   counter("inserts_total", "Entries inserted"),
		removes:   counter("removes_total", "Entries detached from the index"),
		finalized: counter("finalized_total", "Entries whose last reference was released"),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries",
			Help:        "Number of indexed entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.lookups, a.inserts, a.removes, a.finalized, a.entries)
	return a
}

func (a *Adapter) Hit()             { a.lookups.WithLabelValues("hit").Inc() }
func (a *Adapter) Miss()            { a.lookups.WithLabelValues("miss").Inc() }
func (a *Adapter) Insert()          { a.inserts.Inc() }
func (a *Adapter) Remove()          { a.removes.Inc() }
func (a *Adapter) Finalize()        { a.finalized.Inc() }
func (a *Adapter) Size(entries int) { a.entries.Set(float64(entries)) }

// Compile-time check: ensure Adapter implements index.Metrics.
var _ index.Metrics = (*Adapter)(nil)
