// Package metrics adapts the host-call counters used throughout this module
// into a thin, optional Prometheus sink. Passing a *prometheus.Registry
// wires real collectors; passing nil keeps the hot path free of metric
// bookkeeping.
//
// ┌───────────────────────────┬──────┐
// │ Metric                    │ Type │
// ├────────────────────────────┼──────┤
// │ contractstore_loads_total  │ Ctr  │
// │ contractstore_stores_total │ Ctr  │
// │ contractstore_clears_total │ Ctr  │
// │ contractstore_overflow_notice_total │ Ctr │
// └───────────────────────────┴──────┘
//
// © 2025 contractstore authors. MIT License.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Sink is the internal interface abstracting away the concrete backend
// (Prometheus vs noop). Components that emit metrics depend only on this.
type Sink interface {
	IncLoad()
	IncStore()
	IncClear()
	IncOverflowNotice()
}

type noopSink struct{}

func (noopSink) IncLoad()           {}
func (noopSink) IncStore()          {}
func (noopSink) IncClear()          {}
func (noopSink) IncOverflowNotice() {}

// Noop returns a Sink that discards every observation.
func Noop() Sink { return noopSink{} }

type promSink struct {
	loads     prometheus.Counter
	stores    prometheus.Counter
	clears    prometheus.Counter
	overflows prometheus.Counter
}

// NewProm registers the host-call counters on reg and returns a Sink backed
// by them. A nil reg returns Noop().
func NewProm(reg *prometheus.Registry) Sink {
	if reg == nil {
		return Noop()
	}
	ps := &promSink{
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contractstore",
			Name:      "loads_total",
			Help:      "Number of raw host Load calls.",
		}),
		stores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contractstore",
			Name:      "stores_total",
			Help:      "Number of raw host Store calls.",
		}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contractstore",
			Name:      "clears_total",
			Help:      "Number of raw host Clear calls.",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contractstore",
			Name:      "overflow_notice_total",
			Help:      "Number of StorageKey arithmetic operations that wrapped the 2^256 ring.",
		}),
	}
	reg.MustRegister(ps.loads, ps.stores, ps.clears, ps.overflows)
	return ps
}

func (p *promSink) IncLoad()           { p.loads.Inc() }
func (p *promSink) IncStore()          { p.stores.Inc() }
func (p *promSink) IncClear()          { p.clears.Inc() }
func (p *promSink) IncOverflowNotice() { p.overflows.Inc() }
