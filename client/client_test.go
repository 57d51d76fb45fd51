package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/heatwave/models"
)

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given an API that answers normally", t, func() {
		var lastQuery string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/best-jump-score", func(w http.ResponseWriter, r *http.Request) {
			lastQuery = r.URL.RawQuery
			respond(http.StatusOK, `{"status":"success","data":{"score":8.25,"subtitle":"Marcilio Browne - Heat 12a","isMultiple":false,"description":"Forward Loop"}}`)(w, r)
		})
		mux.HandleFunc("/api/event-results", respond(http.StatusOK,
			`{"status":"success","data":[{"Position":1,"Rider":"Marcilio Browne","Sponsors":"Goya"}]}`))
		mux.HandleFunc("/api/athlete-filters", respond(http.StatusOK,
			`{"status":"success","data":{"athletes":[{"athlete_name":"Philip Koster"}],"years":null}}`))
		mux.HandleFunc("/api/chart-data", respond(http.StatusOK, `{"status":"success","data":null}`))
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.URL + "/")

		Convey("Data is unwrapped from the envelope", func() {
			got := c.BestJumpScore(ctx, Filter{EventID: 374, Gender: "Men"})
			So(got, ShouldResemble, models.BestScore{Score: 8.25, Subtitle: "Marcilio Browne - Heat 12a", Description: "Forward Loop"})

			rows := c.EventResults(ctx, Filter{})
			So(rows, ShouldResemble, []models.EventResultRow{{Position: 1, Rider: "Marcilio Browne", Sponsors: "Goya"}})
		})

		Convey("Only set filter fields reach the query string", func() {
			c.BestJumpScore(ctx, Filter{EventID: 374, Gender: "Men"})
			So(lastQuery, ShouldEqual, "eventId=374&gender=Men")

			c.BestJumpScore(ctx, Filter{})
			So(lastQuery, ShouldBeEmpty)
		})

		Convey("Null lists come back empty", func() {
			So(c.ChartData(ctx, Filter{}), ShouldNotBeNil)
			So(c.ChartData(ctx, Filter{}), ShouldBeEmpty)

			filters := c.AthleteFilters(ctx)
			So(filters.Athletes, ShouldHaveLength, 1)
			So(filters.Years, ShouldNotBeNil)
			So(filters.Years, ShouldBeEmpty)
		})
	})

	Convey("Given an API that fails", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/calendar", respond(http.StatusInternalServerError, `{"status":"error","error":"Internal server error"}`))
		mux.HandleFunc("/api/rider-count", respond(http.StatusOK, `{"status":"error","error":"boom"}`))
		mux.HandleFunc("/api/athlete-filters", respond(http.StatusOK, `not json`))
		mux.HandleFunc("/api/best-heat-score", respond(http.StatusBadRequest, `{"status":"error","error":"invalid gender: X"}`))
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.URL)

		Convey("Each call returns its fallback", func() {
			So(c.Calendar(ctx), ShouldResemble, []models.Event{})
			So(c.RiderCount(ctx, Filter{}), ShouldResemble, models.RiderCount{Count: 0})
			So(c.AthleteFilters(ctx), ShouldResemble, models.EmptyAthleteFilters())
			So(c.BestHeatScore(ctx, Filter{Gender: "X"}), ShouldResemble, models.EmptyBestScore())
			So(c.HeatData(ctx, Filter{}), ShouldResemble, []models.HeatDataRow{})
		})
	})

	Convey("Given an unreachable API", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(url)

		Convey("Calls fall back without an error", func() {
			So(c.EventResults(ctx, Filter{}), ShouldResemble, []models.EventResultRow{})
			So(c.Health(ctx).Database, ShouldEqual, models.DatabaseDisconnected)
		})
	})

	Convey("Given an API that keeps failing", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := New(srv.URL, WithBreaker(3, time.Hour))

		Convey("The breaker opens and later calls skip the network", func() {
			for i := 0; i < 3; i++ {
				So(c.Calendar(ctx), ShouldBeEmpty)
			}
			So(hits.Load(), ShouldEqual, 3)

			for i := 0; i < 5; i++ {
				So(c.Calendar(ctx), ShouldBeEmpty)
			}
			So(hits.Load(), ShouldEqual, 3)
		})
	})

	Convey("Given an API rejecting the filter", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			respond(http.StatusBadRequest, `{"status":"error","error":"invalid gender: X"}`)(w, r)
		}))
		defer srv.Close()

		c := New(srv.URL, WithBreaker(2, time.Hour))

		Convey("The breaker stays closed", func() {
			for i := 0; i < 4; i++ {
				c.EventResults(ctx, Filter{Gender: "X"})
			}
			So(hits.Load(), ShouldEqual, 4)
		})
	})
}
