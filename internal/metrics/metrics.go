package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "decision_cycles_total", Help: "Decision cycles by terminal result"},
		[]string{"result"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_total", Help: "Orders accepted by the venue"},
		[]string{"instrument", "side"},
	)
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fallbacks_total", Help: "Degraded-mode fallbacks by source"},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, OrdersTotal, FallbacksTotal)
}

// Handler returns the /metrics handler for the bot's HTTP mux.
func Handler() http.Handler {
	return promhttp.Handler()
}
