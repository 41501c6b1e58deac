package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "maulas")
				So(manager.subsystem, ShouldEqual, "pool")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("season"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"season": "2025-2026"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "season")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
				So(manager.constLabels["season"], ShouldEqual, "2025-2026")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording ingestion metrics", func() {
			m.RecordSheetParsed("ok")
			m.RecordSheetParsed("ok")
			m.RecordSheetParsed("rejected")
			m.RecordCellsDiscarded(3)
			m.RecordCellsDiscarded(0)
			m.RecordDuplicateSheet()

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(m.sheetsParsed.WithLabelValues("ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.sheetsParsed.WithLabelValues("rejected")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.cellsDiscarded), ShouldEqual, 3)
				So(testutil.ToFloat64(m.duplicateSheets), ShouldEqual, 1)
			})
		})

		Convey("When recording ranking metrics", func() {
			m.RecordRoundRanked()
			m.RecordRoundMissingResults()
			m.ObserveHits(14)
			m.RecordPipelineDuration(12.5)
			m.UpdateDataset(19, 14, 200)

			Convey("Then counters and gauges are set", func() {
				So(testutil.ToFloat64(m.roundsRanked), ShouldEqual, 1)
				So(testutil.ToFloat64(m.roundsMissingResults), ShouldEqual, 1)
				So(testutil.ToFloat64(m.membersTotal), ShouldEqual, 19)
				So(testutil.ToFloat64(m.predictionsTotal), ShouldEqual, 200)
			})
		})

		Convey("When recording exports and HTTP traffic", func() {
			m.RecordSnapshotWrite("file", nil)
			m.RecordSinkWrite("mongo", errors.New("boom"))
			m.RecordSinkWrite("mongo", nil)
			m.RecordHTTPRequest("ranking", "GET", 200, 1.5)
			m.RecordErrorByEndpoint("ranking", "GET", "not_found")

			Convey("Then labelled series are created", func() {
				So(testutil.ToFloat64(m.snapshotWrites.WithLabelValues("file", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.sinkWrites.WithLabelValues("mongo", "error")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.sinkWrites.WithLabelValues("mongo", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.snapshotWrites.WithLabelValues("mongo", "error")), ShouldEqual, 0)
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("ranking", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("ranking", "GET", "not_found")), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("Then recording is a no-op", func() {
			m.RecordRoundRanked()
			m.RecordSheetParsed("ok")
			So(testutil.ToFloat64(m.roundsRanked), ShouldEqual, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Package helpers never panic and share one registry", t, func() {
		So(func() {
			RecordSheetParsed("partial")
			RecordCellsDiscarded(1)
			RecordDuplicateSheet()
			RecordRoundRanked()
			RecordRoundMissingResults()
			ObserveHits(7)
			RecordPipelineDuration(3)
			UpdateDataset(1, 1, 1)
			RecordSnapshotWrite("file", nil)
			RecordSinkWrite("mongo", nil)
			UpdateSinkQueueDepth(3)
			RecordHTTPRequest("rounds", "GET", 200, 1)
			RecordErrorByEndpoint("rounds", "GET", "client_error")
		}, ShouldNotPanic)
		So(GetRegistry(), ShouldNotBeNil)
	})
}
