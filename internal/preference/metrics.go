package preference

import "github.com/prometheus/client_golang/prometheus"

var (
	writeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_preference_write_failures_total",
			Help: "Persisted theme records that could not be written.",
		},
		[]string{"record"},
	)
	malformedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_preference_malformed_records_total",
			Help: "Persisted theme records discarded because they could not be parsed.",
		},
		[]string{"record"},
	)
)

func init() {
	prometheus.MustRegister(writeFailures)
	prometheus.MustRegister(malformedRecords)
}
