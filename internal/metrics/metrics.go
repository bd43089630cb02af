// Package metrics provides Prometheus metrics for restore sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every feedrestore metric. It is separate from the default
// registry so exports contain only restore data.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	restoresTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrestore_restores_total",
			Help: "Total number of executed restore requests",
		},
		[]string{"status"},
	)

	restoreDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedrestore_restore_duration_seconds",
			Help:    "Restore request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	providerCacheLookups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrestore_provider_cache_lookups_total",
			Help: "Provider cache lookups by result",
		},
		[]string{"result"},
	)

	feedClassifications = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrestore_feed_classifications_total",
			Help: "Feed classifications by resulting feed type",
		},
		[]string{"type"},
	)

	packagesInstalled = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "feedrestore_packages_installed_total",
			Help: "Packages copied into the global packages folder",
		},
	)
)

// RecordRestore records a finished restore request.
func RecordRestore(success bool, seconds float64) {
	status := "success"
	if !success {
		status = "failure"
	}
	restoresTotal.WithLabelValues(status).Inc()
	restoreDuration.Observe(seconds)
}

// RecordProviderCacheLookup records a provider cache hit or miss.
func RecordProviderCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	providerCacheLookups.WithLabelValues(result).Inc()
}

// RecordClassification records the feed type chosen for a source.
func RecordClassification(feedType string) {
	feedClassifications.WithLabelValues(feedType).Inc()
}

// RecordPackageInstalled records a package written to the global packages folder.
func RecordPackageInstalled() {
	packagesInstalled.Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
