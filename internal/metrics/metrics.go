package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedpulse_polls_total",
		Help: "poll cycles by outcome",
	}, []string{"status"})

	FetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedpulse_fetch_errors_total",
		Help: "upstream fetch failures by endpoint",
	}, []string{"endpoint"})

	ClassifyErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedpulse_classify_errors_total",
		Help: "suppliers rejected with malformed timestamps",
	})

	SuppliersTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "feedpulse_suppliers_tracked",
		Help: "suppliers present in the latest poll",
	})
)

func init() {
	prometheus.MustRegister(PollsTotal, FetchErrorsTotal, ClassifyErrorsTotal, SuppliersTracked)
}
