package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithNamespace("test"))

		Convey("Metadata fetches are counted by result", func() {
			m.RecordMetadataFetch(true)
			m.RecordMetadataFetch(true)
			m.RecordMetadataFetch(false)

			So(testutil.ToFloat64(m.metadataFetches.WithLabelValues(ResultOK)), ShouldEqual, 2.0)
			So(testutil.ToFloat64(m.metadataFetches.WithLabelValues(ResultError)), ShouldEqual, 1.0)
		})

		Convey("Label fallbacks ignore non-positive counts", func() {
			m.RecordLabelFallbacks(0)
			m.RecordLabelFallbacks(-2)
			m.RecordLabelFallbacks(3)
			So(testutil.ToFloat64(m.labelFallbacks), ShouldEqual, 3.0)
		})

		Convey("Gauges and histograms are registered", func() {
			m.SetEventsRendered(12)
			m.ObserveRender(25 * time.Millisecond)

			So(testutil.ToFloat64(m.eventsRendered), ShouldEqual, 12.0)
			count, err := testutil.GatherAndCount(registry, "test_generator_render_duration_seconds")
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 1)
		})

		Convey("The textfile contains the metric names", func() {
			m.SetEventsRendered(4)
			path := filepath.Join(t.TempDir(), "autotimeline.prom")

			So(m.WriteTextfile(path), ShouldBeNil)
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "test_generator_events_rendered 4")
		})

		Convey("Writing into a missing directory fails with ErrWriteTextfile", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
		})
	})

	Convey("A nil manager is safe to record on", t, func() {
		var m *Manager
		So(func() {
			m.RecordMetadataFetch(true)
			m.RecordLabelFallbacks(1)
			m.SetEventsRendered(1)
			m.ObserveRender(time.Second)
		}, ShouldNotPanic)
	})
}
