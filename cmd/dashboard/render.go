package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/padraicbc/heatwave/models"
)

const (
	maxHeatRows = 10
	dateLayout  = "2006-01-02"
)

type eventStats struct {
	heat, wave, jump models.BestScore
	riders           models.RiderCount
	totals           []models.HeatTotalRow
	chart            []models.ChartPoint
}

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func renderCalendar(w io.Writer, events []models.Event) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No completed events.")
		return err
	}
	return table(w, "ID\tEVENT\tSTART\tEND\tCATEGORIES\tRIDERS", func(tw *tabwriter.Writer) {
		for _, e := range events {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n",
				e.EventID, e.EventName, e.StartDate.Format(dateLayout), e.EndDate.Format(dateLayout),
				e.CategoryCount, e.RiderCount)
		}
	})
}

func card(w io.Writer, title string, s models.BestScore) {
	line := fmt.Sprintf("%-16s %6.2f  %s", title, s.Score, s.Subtitle)
	if s.Description != "" {
		line += " (" + s.Description + ")"
	}
	fmt.Fprintln(w, line)
}

func renderEventStats(w io.Writer, s eventStats) error {
	card(w, "Best heat score", s.heat)
	card(w, "Best wave score", s.wave)
	card(w, "Best jump score", s.jump)
	fmt.Fprintf(w, "%-16s %6d\n\n", "Riders", s.riders.Count)

	totals := s.totals
	if len(totals) > maxHeatRows {
		totals = totals[:maxHeatRows]
	}
	if err := table(w, "HEAT\tATHLETE\tTOTAL\tWAVES\tJUMPS", func(tw *tabwriter.Writer) {
		for _, r := range totals {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\n", r.HeatNo, r.Athlete, r.TotalPoints, r.WavePoints, r.JumpPoints)
		}
	}); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return table(w, "TYPE\tBEST\tAVERAGE", func(tw *tabwriter.Writer) {
		for _, p := range s.chart {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", p.Type, p.BestScore, p.AverageScore)
		}
	})
}

func renderEventResults(w io.Writer, rows []models.EventResultRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	return table(w, "POS\tRIDER\tSPONSORS", func(tw *tabwriter.Writer) {
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Position, r.Rider, r.Sponsors)
		}
	})
}

func renderAthleteFilters(w io.Writer, f models.AthleteFilters) error {
	if err := table(w, "ATHLETE", func(tw *tabwriter.Writer) {
		for _, a := range f.Athletes {
			fmt.Fprintln(tw, a.AthleteName)
		}
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return table(w, "YEAR\tRESULTS", func(tw *tabwriter.Writer) {
		for _, y := range f.Years {
			fmt.Fprintf(tw, "%d\t%d\n", y.Year, y.Count)
		}
	})
}

func renderAthlete(w io.Writer, name string, results []models.AthleteResult, best []models.BestHeatScoreRow) error {
	fmt.Fprintln(w, name)
	fmt.Fprintln(w)
	if err := table(w, "YEAR\tEVENT\tLOCATION\tSTART\tPOS", func(tw *tabwriter.Writer) {
		for _, r := range results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", r.Year, r.EventName, r.Location, r.StartDate.Format(dateLayout), r.Position)
		}
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return table(w, "EVENT\tCATEGORY\tBEST HEAT", func(tw *tabwriter.Writer) {
		for _, b := range best {
			event := "-"
			if b.EventName != nil {
				event = *b.EventName
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", event, b.CategoryCode, b.BestScore)
		}
	})
}
