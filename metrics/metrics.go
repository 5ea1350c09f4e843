package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the collectors this core reports. Construct one with
// NewRegistry and register it with a prometheus.Registerer; the zero
// value is not usable.
type Registry struct {
	PacketsEncoded   *prometheus.CounterVec
	PacketsDecoded   *prometheus.CounterVec
	PacketsDiscarded *prometheus.CounterVec
	JitterBufferDepth prometheus.Gauge
	PacerDriftMillis  prometheus.Histogram
}

// NewRegistry constructs the collector set. namespace prefixes every
// metric name (e.g. "rtpcore").
func NewRegistry(namespace string) *Registry {
	return &Registry{
		PacketsEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_encoded_total",
			Help:      "Total RTP payloads produced by a codec encoder, by payload type.",
		}, []string{"payload_type"}),
		PacketsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_decoded_total",
			Help:      "Total RTP payloads consumed by a codec decoder, by payload type.",
		}, []string{"payload_type"}),
		PacketsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_discarded_total",
			Help:      "Total inbound packets discarded, by reason (late, gap_skip, framing_error).",
		}, []string{"reason"}),
		JitterBufferDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jitter_buffer_depth",
			Help:      "Current number of packets held in the jitter buffer.",
		}),
		PacerDriftMillis: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pacer_drift_milliseconds",
			Help:      "Observed deviation between a pacer tick and its scheduled time.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
	}
}

// MustRegister registers every collector in the set with reg, panicking
// on a duplicate-registration error — the same fail-fast convention the
// rest of this core uses for irrecoverable setup mistakes.
func (r *Registry) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		r.PacketsEncoded,
		r.PacketsDecoded,
		r.PacketsDiscarded,
		r.JitterBufferDepth,
		r.PacerDriftMillis,
	)
}
