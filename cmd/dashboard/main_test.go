package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/heatwave/client"
	"github.com/padraicbc/heatwave/config"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DefaultEventID: 374, DefaultGender: "Men"}

	Convey("Given a stats API", t, func() {
		var queries []string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/calendar", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","data":[{"event_id":374,"event_name":"Sylt Grand Slam","section":"completed events","start_date":"2025-09-26T00:00:00Z","end_date":"2025-10-05T00:00:00Z","category_count":2,"rider_count":48}]}`))
		})
		mux.HandleFunc("/api/best-heat-score", func(w http.ResponseWriter, r *http.Request) {
			queries = append(queries, r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"status":"success","data":{"score":18.5,"subtitle":"Multiple","isMultiple":true}}`))
		})
		mux.HandleFunc("/api/best-jump-score", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","data":{"score":8.25,"subtitle":"Marcilio Browne - Heat 12a","isMultiple":false,"description":"Forward Loop"}}`))
		})
		mux.HandleFunc("/api/event-results", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","data":[{"Position":1,"Rider":"Sarah-Quita Offringa","Sponsors":"NeilPryde"}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := client.New(srv.URL)
		var out bytes.Buffer

		Convey("calendar prints one row per event", func() {
			So(run(ctx, c, cfg, &out, "calendar", nil), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Sylt Grand Slam")
			So(out.String(), ShouldContainSubstring, "2025-09-26")
			So(out.String(), ShouldContainSubstring, "48")
		})

		Convey("event-stats uses the configured defaults and shows fallbacks for missing data", func() {
			So(run(ctx, c, cfg, &out, "event-stats", nil), ShouldBeNil)
			So(queries, ShouldResemble, []string{"eventId=374&gender=Men"})
			So(out.String(), ShouldContainSubstring, "18.50  Multiple")
			So(out.String(), ShouldContainSubstring, "Marcilio Browne - Heat 12a (Forward Loop)")
			So(out.String(), ShouldContainSubstring, "- Heat")
		})

		Convey("event-results prints placings", func() {
			So(run(ctx, c, cfg, &out, "event-results", []string{"-gender", "Women"}), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Sarah-Quita Offringa")
		})

		Convey("athletes without data prints empty tables", func() {
			So(run(ctx, c, cfg, &out, "athletes", nil), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "ATHLETE")
		})

		Convey("unknown commands and flags are errors", func() {
			So(run(ctx, c, cfg, &out, "scores", nil), ShouldNotBeNil)
			So(run(ctx, c, cfg, &out, "calendar", []string{"-nope"}), ShouldNotBeNil)
		})
	})
}
