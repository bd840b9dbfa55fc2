package themestore

import "github.com/prometheus/client_golang/prometheus"

var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_theme_resolutions_total",
			Help: "Theme resolutions performed, by dark mode flag.",
		},
		[]string{"dark_mode"},
	)
	resolutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brandkit_theme_resolution_duration_seconds",
			Help:    "Time to resolve and serialize one tenant theme.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)
	unknownPresetTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brandkit_theme_unknown_preset_total",
			Help: "Resolutions that fell back to the default preset because the selected id is not registered.",
		},
	)
	applyFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brandkit_theme_apply_failures_total",
			Help: "Resolved themes the applier failed to publish.",
		},
	)
	activeTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandkit_theme_tenants",
			Help: "Tenants with a loaded theme store.",
		},
	)
)

func init() {
	prometheus.MustRegister(resolutionsTotal)
	prometheus.MustRegister(resolutionDuration)
	prometheus.MustRegister(unknownPresetTotal)
	prometheus.MustRegister(applyFailuresTotal)
	prometheus.MustRegister(activeTenants)
}
