// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/scpsl-tools/slbind/internal/vars"
)

// Outcome labels for remote status queries.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeBadFormat = "bad_format"
	OutcomeTimeout   = "timeout"
	OutcomeError     = "error"
)

var (
	// Commands counts handled chat commands by command name.
	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slbind_commands_total",
			Help: "Number of chat commands handled",
		},
		[]string{"command"},
	)

	// Queries counts remote status queries by outcome.
	Queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slbind_remote_queries_total",
			Help: "Number of status API queries by outcome",
		},
		[]string{"outcome"},
	)
)

// Register installs the collectors and the build-info gauge into the
// default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(Commands)
	prometheus.MustRegister(Queries)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slbind_build_info",
			Help: "Build information",
		},
		[]string{"version", "commit"},
	)
	prometheus.MustRegister(buildInfo)

	info := vars.Info()
	buildInfo.WithLabelValues(info.Version, info.CommitShort).Set(1)
}
