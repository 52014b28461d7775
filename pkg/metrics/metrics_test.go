package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty or nil option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should fall back to defaults and be created", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording scenario metrics", func() {
			So(func() {
				RecordScenarioApplied()
				RecordScenarioApplied()
				RecordScenarioRejected()
			}, ShouldNotPanic)
		})

		Convey("When recording re-scoring latency", func() {
			So(func() {
				RecordRescoreLatency(0.0)
				RecordRescoreLatency(12.5)
				RecordRescoreLatency(10000.0)
			}, ShouldNotPanic)
		})

		Convey("When updating dataset gauges", func() {
			So(func() {
				UpdateCitiesTracked(0)
				UpdateCitiesTracked(50)
				RecordRowsDropped(0)
				RecordRowsDropped(3)
			}, ShouldNotPanic)
		})

		Convey("When recording scoring errors", func() {
			So(func() {
				RecordScoringError()
				RecordScoringError()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequest("/scenario", "POST", "400")
				RecordHTTPRequestDuration("/ranking", "GET", "200", 5.0)
				RecordHTTPRequestDuration("", "", "200", 0.0)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordScenarioApplied()
					UpdateCitiesTracked(j)
					RecordRescoreLatency(float64(j))
					RecordHTTPRequest("/ranking", "GET", "200")
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then concurrent access completes without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("Then it is non-nil and gatherable", func() {
			registry := GetRegistry()
			So(registry, ShouldNotBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeNil)
		})
	})
}
