package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultReceived = "received"
	resultAccepted = "accepted"
	resultRejected = "rejected"
	resultIgnored  = "ignored"
	resultDropped  = "dropped"
)

type Metrics struct {
	Packets        *prometheus.CounterVec
	Rejections     *prometheus.CounterVec
	OutOfRange     *prometheus.CounterVec
	DecodeDuration prometheus.Histogram
	Drivers        prometheus.Gauge
	QueueDepth     prometheus.Gauge
}

// NewMetrics creates the ingestion metrics on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Packets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racetelemetry_packets_total",
			Help: "Datagrams seen by the listener, by result",
		}, []string{"result"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racetelemetry_rejections_total",
			Help: "Rejected datagrams, by reason",
		}, []string{"reason"}),
		OutOfRange: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racetelemetry_fields_out_of_range_total",
			Help: "Decoded fields voided by range validation, by packet type",
		}, []string{"packet_type"}),
		DecodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "racetelemetry_decode_duration_seconds",
			Help:    "Time to decode and merge one datagram",
			Buckets: prometheus.ExponentialBuckets(0.000005, 2, 12), // 5µs to ~10ms
		}),
		Drivers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "racetelemetry_drivers",
			Help: "Classified drivers in the latest snapshot",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "racetelemetry_queue_depth",
			Help: "Datagrams waiting to be decoded",
		}),
	}
}
