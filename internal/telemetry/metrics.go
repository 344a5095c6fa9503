package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/reactboot"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Bootstrap metrics
	BootstrapStepsTotal   metric.Int64Counter
	BootstrapStepDuration metric.Float64Histogram

	// Install metrics
	InstallOutputBytes metric.Int64Counter

	// Asset metrics
	AssetBuildsTotal   metric.Int64Counter
	AssetBuildDuration metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary.
// Call it after InitTelemetry so the instruments bind to the configured provider.
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.BootstrapStepsTotal, _ = meter.Int64Counter(
		"reactboot.bootstrap.steps.total",
		metric.WithDescription("Total number of bootstrap steps executed"),
		metric.WithUnit("{step}"),
	)

	m.BootstrapStepDuration, _ = meter.Float64Histogram(
		"reactboot.bootstrap.step.duration",
		metric.WithDescription("Duration of bootstrap steps"),
		metric.WithUnit("ms"),
	)

	m.InstallOutputBytes, _ = meter.Int64Counter(
		"reactboot.install.output.bytes",
		metric.WithDescription("Bytes of output produced by the dependency installer"),
		metric.WithUnit("By"),
	)

	m.AssetBuildsTotal, _ = meter.Int64Counter(
		"reactboot.assets.builds.total",
		metric.WithDescription("Total number of asset builds"),
		metric.WithUnit("{build}"),
	)

	m.AssetBuildDuration, _ = meter.Float64Histogram(
		"reactboot.assets.build.duration",
		metric.WithDescription("Duration of asset builds"),
		metric.WithUnit("ms"),
	)

	return m
}
