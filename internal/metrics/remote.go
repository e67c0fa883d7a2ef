// Package metrics defines Prometheus metrics for zonegate components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RemoteMetrics holds metrics for the remote zone connection directory.
type RemoteMetrics struct {
	// ConnectionsBuilt counts connection handles built during directory
	// initialization. Labels: channel (data, sip)
	ConnectionsBuilt *prometheus.CounterVec

	// CredentialFallbacks counts connections that fell back to the local
	// zone's system key because peer credentials did not resolve.
	CredentialFallbacks prometheus.Counter

	// ZonesSkipped counts zones skipped because they had no usable endpoints.
	ZonesSkipped prometheus.Counter

	// RedirectMisses counts redirect endpoint lookups that found the
	// redirect zone missing from the directory or unable to report an endpoint.
	RedirectMisses prometheus.Counter

	// ZonesConnected tracks the number of zones with directory entries.
	ZonesConnected prometheus.Gauge
}

// NewRemoteMetrics creates and registers remote directory metrics.
// Uses promauto for automatic registration with the default registry.
func NewRemoteMetrics() *RemoteMetrics {
	return newRemoteMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewRemoteMetricsWithRegistry creates remote directory metrics registered
// with the given registerer. Useful for tests that need an isolated registry.
func NewRemoteMetricsWithRegistry(reg prometheus.Registerer) *RemoteMetrics {
	return newRemoteMetrics(promauto.With(reg))
}

func newRemoteMetrics(factory promauto.Factory) *RemoteMetrics {
	return &RemoteMetrics{
		ConnectionsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "zonegate",
				Subsystem: "remote",
				Name:      "connections_built_total",
				Help:      "Connection handles built during directory initialization, by channel.",
			},
			[]string{"channel"},
		),
		CredentialFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "zonegate",
				Subsystem: "remote",
				Name:      "credential_fallbacks_total",
				Help:      "Connections that fell back to the local system key.",
			},
		),
		ZonesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "zonegate",
				Subsystem: "remote",
				Name:      "zones_skipped_total",
				Help:      "Zones skipped during initialization for lack of usable endpoints.",
			},
		),
		RedirectMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "zonegate",
				Subsystem: "remote",
				Name:      "redirect_misses_total",
				Help:      "Redirect endpoint lookups that could not produce an endpoint.",
			},
		),
		ZonesConnected: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "zonegate",
				Subsystem: "remote",
				Name:      "zones_connected",
				Help:      "Number of zones with entries in the connection directory.",
			},
		),
	}
}
