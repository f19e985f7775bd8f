package reporthttp

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheMetricsMu          sync.Mutex
	cacheMetricsInitialized bool

	cacheHitCounter   *prometheus.CounterVec
	cacheMissCounter  *prometheus.CounterVec
	vmBuildHistogram  *prometheus.HistogramVec
	cacheMetricsError error
)

// SetupCacheMetrics registers Prometheus metrics observing the report
// view-model cache. Registration runs once; later calls return the first
// outcome.
func SetupCacheMetrics(reg prometheus.Registerer) error {
	cacheMetricsMu.Lock()
	defer cacheMetricsMu.Unlock()
	if cacheMetricsInitialized {
		return cacheMetricsError
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cacheHitCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parklane_reports_view_cache_hits_total",
		Help: "Number of cache hits for report view models.",
	}, []string{"report"})
	cacheMissCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parklane_reports_view_cache_miss_total",
		Help: "Number of cache misses for report view models.",
	}, []string{"report"})
	vmBuildHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parklane_reports_view_build_duration_seconds",
		Help:    "Duration required to build report view models.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	for _, collector := range []prometheus.Collector{cacheHitCounter, cacheMissCounter, vmBuildHistogram} {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				switch c := already.ExistingCollector.(type) {
				case *prometheus.CounterVec:
					if collector == cacheHitCounter {
						cacheHitCounter = c
					} else {
						cacheMissCounter = c
					}
				case *prometheus.HistogramVec:
					vmBuildHistogram = c
				default:
					cacheMetricsError = fmt.Errorf("report cache metrics: unexpected collector type %T", c)
				}
				continue
			}
			cacheMetricsError = err
			cacheHitCounter = nil
			cacheMissCounter = nil
			vmBuildHistogram = nil
			cacheMetricsInitialized = true
			return cacheMetricsError
		}
	}

	cacheMetricsInitialized = true
	return cacheMetricsError
}

func recordViewCacheHit(report string) {
	if cacheHitCounter == nil {
		return
	}
	cacheHitCounter.WithLabelValues(report).Inc()
}

func recordViewCacheMiss(report string) {
	if cacheMissCounter == nil {
		return
	}
	cacheMissCounter.WithLabelValues(report).Inc()
}

func observeViewBuildDuration(report string, duration time.Duration) {
	if vmBuildHistogram == nil {
		return
	}
	vmBuildHistogram.WithLabelValues(report).Observe(duration.Seconds())
}
