package metrics

import (
	"net/http"

	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics for the ads service.
type MetricsManager struct {
	Registry *prometheus.Registry

	ListingsServedTotal   prometheus.Counter
	ListingCacheHitsTotal prometheus.Counter
	ListingCacheMissTotal prometheus.Counter
	AdsCreatedTotal       prometheus.Counter
	AdsFeaturedTotal      prometheus.Counter
	APIErrorsTotal        *prometheus.CounterVec
	APILatency            *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	listingsServedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_served_total",
		Help:      "Total number of listing pages served.",
	})
	listingCacheHitsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_cache_hits_total",
		Help:      "Total number of listing requests answered from the cache.",
	})
	listingCacheMissTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_cache_misses_total",
		Help:      "Total number of listing requests that reached the durable store.",
	})
	adsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ads_created_total",
		Help:      "Total number of ads created.",
	})
	adsFeaturedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ads_featured_total",
		Help:      "Total number of featuring purchases applied.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route.",
	}, []string{"route", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsServedTotal,
		listingCacheHitsTotal,
		listingCacheMissTotal,
		adsCreatedTotal,
		adsFeaturedTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:              registry,
		ListingsServedTotal:   listingsServedTotal,
		ListingCacheHitsTotal: listingCacheHitsTotal,
		ListingCacheMissTotal: listingCacheMissTotal,
		AdsCreatedTotal:       adsCreatedTotal,
		AdsFeaturedTotal:      adsFeaturedTotal,
		APIErrorsTotal:        apiErrorsTotal,
		APILatency:            apiLatency,
	}
}

// StartMetricsServer starts an HTTP server exposing /metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
