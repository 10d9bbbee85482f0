// Package metrics exposes the Prometheus counters the gating service's
// /metrics endpoint serves, covering evaluated roles and outbound
// provider calls.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts evaluated roles, labelled by outcome ("ok",
	// "parse_error").
	ChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolegate_checks_total",
			Help: "Total number of roles evaluated by check_access.",
		},
		[]string{"outcome"},
	)

	// ProviderCallsTotal counts outbound provider calls, labelled by chain,
	// operation, and whether the call errored.
	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolegate_provider_calls_total",
			Help: "Total number of BalanceQuerier calls issued, by chain and operation.",
		},
		[]string{"chain", "operation", "result"},
	)
)

func init() {
	prometheus.MustRegister(ChecksTotal, ProviderCallsTotal)
}

// Handler returns the standard Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
