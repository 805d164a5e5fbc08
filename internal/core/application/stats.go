package application

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// TradeStats is a snapshot of the counters maintained by the coordinator.
// Pending counts the trades that did not reach a terminal status yet.
type TradeStats struct {
	Total     uint64 `json:"total"`
	Pending   uint64 `json:"pending"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
	Expired   uint64 `json:"expired"`
}

// statsAggregator keeps running counters derived from trade transitions.
// Counters are bumped in the same critical section as the repository
// mutation that triggered them, so they always agree with the stored trades.
type statsAggregator struct {
	mtx   sync.Mutex
	stats TradeStats

	createdCounter   prometheus.Counter
	completedCounter prometheus.Counter
	expiredCounter   prometheus.Counter
	pendingGauge     prometheus.Gauge
}

func newStatsAggregator(registry prometheus.Registerer) *statsAggregator {
	a := &statsAggregator{
		createdCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparkled_trades_created_total",
			Help: "Total number of trades created.",
		}),
		completedCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparkled_trades_completed_total",
			Help: "Total number of trades settled.",
		}),
		expiredCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparkled_trades_expired_total",
			Help: "Total number of trades reaped past their expiry time.",
		}),
		pendingGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sparkled_trades_pending",
			Help: "Number of trades not yet in a terminal status.",
		}),
	}

	if registry != nil {
		registry.MustRegister(
			a.createdCounter, a.completedCounter, a.expiredCounter,
			a.pendingGauge,
		)
	}

	return a
}

func (a *statsAggregator) addCreated() {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.stats.Total++
	a.stats.Pending++
	a.createdCounter.Inc()
	a.pendingGauge.Inc()
}

func (a *statsAggregator) addCompleted() {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.stats.Pending--
	a.stats.Completed++
	a.completedCounter.Inc()
	a.pendingGauge.Dec()
}

func (a *statsAggregator) addExpired() {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.stats.Pending--
	a.stats.Expired++
	a.expiredCounter.Inc()
	a.pendingGauge.Dec()
}

func (a *statsAggregator) snapshot() TradeStats {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	return a.stats
}
