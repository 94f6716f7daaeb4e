package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Decoding Prometheus metrics.
var (
	RecordsDecodedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flatrec",
			Name:      "records_decoded_total",
			Help:      "Total number of decoded lines",
		},
		[]string{"tag", "status"},
	)

	FieldCoercionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flatrec",
			Name:      "field_coercion_errors_total",
			Help:      "Total number of field values kept as raw text after a failed coercion",
		},
		[]string{"tag", "field", "type"},
	)

	RecordsEncodedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flatrec",
			Name:      "records_encoded_total",
			Help:      "Total number of records rendered back to delimited lines",
		},
		[]string{"tag"},
	)
)

var decodeMetricsRegistered bool

// RegisterDecodeMetrics registers the decoding metrics with the default registry.
func RegisterDecodeMetrics() {
	if decodeMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecordsDecodedTotal)
	prometheus.MustRegister(FieldCoercionErrorsTotal)
	prometheus.MustRegister(RecordsEncodedTotal)
	decodeMetricsRegistered = true
}
