package plugin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wasplug",
		Subsystem: "dispatch",
		Name:      "duration_seconds",
		Help:      "Duration of a single PluginInstance.Dispatch call.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"interface_path", "function_name"})

	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wasplug",
		Subsystem: "dispatch",
		Name:      "total",
		Help:      "Total PluginInstance.Dispatch calls, by outcome.",
	}, []string{"interface_path", "function_name", "outcome"})
)

// recordDispatch is called once per Dispatch invocation, success or failure.
// It never affects the returned (Val, DispatchError) — metrics recording is
// purely observational and never alters the call's outcome.
func recordDispatch(interfacePath, functionName string, started time.Time, derr DispatchError) {
	dispatchDuration.WithLabelValues(interfacePath, functionName).Observe(time.Since(started).Seconds())
	outcome := "ok"
	if derr != nil {
		outcome = derr.Tag()
	}
	dispatchTotal.WithLabelValues(interfacePath, functionName, outcome).Inc()
}
