package webserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "textstats"

// Metrics holds the Prometheus collectors for the upload endpoint
type Metrics struct {
	uploads        *prometheus.CounterVec
	failures       *prometheus.CounterVec
	processingTime prometheus.Histogram
	uploadBytes    prometheus.Histogram
	words          prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with registerer
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploads_total",
			Help:      "Uploads processed successfully, by decoded encoding",
		}, []string{"encoding"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upload_failures_total",
			Help:      "Uploads that did not produce statistics, by reason",
		}, []string{"reason"}),
		processingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "processing_duration_seconds",
			Help:      "Time spent decoding and counting one upload",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upload_size_bytes",
			Help:      "Size of uploaded files",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 12),
		}),
		words: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upload_words",
			Help:      "Words counted per upload",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}

	registerer.MustRegister(m.uploads, m.failures, m.processingTime, m.uploadBytes, m.words)

	return m
}

func (m *Metrics) observeUpload(encoding string, size int, words int, seconds float64) {
	m.uploads.WithLabelValues(encoding).Inc()
	m.uploadBytes.Observe(float64(size))
	m.words.Observe(float64(words))
	m.processingTime.Observe(seconds)
}

func (m *Metrics) observeFailure(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}
