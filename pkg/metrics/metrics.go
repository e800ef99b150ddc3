// Package metrics exports ledger activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wavesplatform/gomint/pkg/events"
)

const ledgerMetricsNamespace = "gomint"

// Collector counts delivered ledger events.
type Collector struct {
	issued    prometheus.Counter
	withdrawn prometheus.Counter
	payouts   prometheus.Counter
	events    *prometheus.CounterVec
	price     prometheus.Gauge
	paused    prometheus.Gauge
	lastSeq   prometheus.Gauge
}

func NewCollector() *Collector {
	return &Collector{
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "assets_issued_total",
			Help:      "Number of issued assets",
		}),
		withdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "withdrawn_units_total",
			Help:      "Withdrawn value in base units",
		}),
		payouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "withdrawals_total",
			Help:      "Number of completed withdrawals",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "events_total",
			Help:      "Delivered ledger events by kind",
		}, []string{"kind"}),
		price: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "unit_price_units",
			Help:      "Current unit price in base units",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "paused",
			Help:      "1 if issuance is paused",
		}),
		lastSeq: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ledgerMetricsNamespace,
			Name:      "last_event_seq",
			Help:      "Sequence number of the last delivered event",
		}),
	}
}

func (c *Collector) Register(r prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.issued, c.withdrawn, c.payouts, c.events, c.price, c.paused, c.lastSeq} {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Attach subscribes the collector to the feed.
func (c *Collector) Attach(feed *events.Feed) error {
	return feed.SubscribeAll(c.Observe)
}

// Init sets the gauges from the state the ledger started with.
func (c *Collector) Init(price uint64, paused bool) {
	c.price.Set(float64(price))
	c.paused.Set(boolToFloat(paused))
}

func (c *Collector) Observe(env events.Envelope) {
	c.lastSeq.Set(float64(env.Seq))
	c.events.WithLabelValues(string(env.Event.Kind())).Inc()
	switch e := env.Event.(type) {
	case events.AssetIssued:
		c.issued.Inc()
	case events.PriceChanged:
		c.price.Set(float64(e.Price))
	case events.PausedChanged:
		c.paused.Set(boolToFloat(e.Paused))
	case events.Withdrawn:
		c.payouts.Inc()
		c.withdrawn.Add(float64(e.Amount))
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
