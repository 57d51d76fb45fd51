// cmd/dashboard/main.go
// Terminal rendition of the dashboard pages, read through the API client.
//
// Usage:
//
//	go run ./cmd/dashboard calendar
//	go run ./cmd/dashboard event-stats -event 374 -gender Men
//	go run ./cmd/dashboard event-results -event 374 -gender Women
//	go run ./cmd/dashboard athletes [-athlete "Philip Koster" -year 2025]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/client"
	"github.com/padraicbc/heatwave/config"
	applog "github.com/padraicbc/heatwave/logger"
)

const usage = `usage: dashboard [-api URL] <command> [flags]

commands:
  calendar        completed events
  event-stats     best scores, heat totals and score chart for an event
  event-results   final placings for an event
  athletes        athlete list, or one athlete's results with -athlete
`

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	api := flag.String("api", cfg.APIBaseURL, "base URL of the stats API")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	c := client.New(*api, client.WithLogger(logger))
	if err := run(ctx, c, cfg, os.Stdout, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Error("dashboard", zap.Error(err))
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func run(ctx context.Context, c *client.Client, cfg *config.Config, w io.Writer, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	event := fs.Int("event", cfg.DefaultEventID, "event id")
	gender := fs.String("gender", cfg.DefaultGender, "Men or Women")
	athlete := fs.String("athlete", "", "athlete name")
	year := fs.Int("year", 0, "season")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "calendar":
		return renderCalendar(w, c.Calendar(ctx))
	case "event-stats":
		f := client.Filter{EventID: *event, Gender: *gender}
		return renderEventStats(w, eventStats{
			heat:   c.BestHeatScore(ctx, f),
			wave:   c.BestWaveScore(ctx, f),
			jump:   c.BestJumpScore(ctx, f),
			riders: c.RiderCount(ctx, f),
			totals: c.HeatTotals(ctx, f),
			chart:  c.ChartData(ctx, f),
		})
	case "event-results":
		return renderEventResults(w, c.EventResults(ctx, client.Filter{EventID: *event, Gender: *gender}))
	case "athletes":
		if *athlete == "" {
			return renderAthleteFilters(w, c.AthleteFilters(ctx))
		}
		f := client.Filter{Athlete: *athlete, Year: *year}
		return renderAthlete(w, *athlete, c.AthleteProfileResults(ctx, f), c.BestHeatScores(ctx, client.Filter{Athlete: *athlete}))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
