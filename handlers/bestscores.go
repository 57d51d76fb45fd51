package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

var (
	heatTotals = bun.Ident("view_heat_totals")
	heatScores = bun.Ident("view_heat_scores")
)

// scoreCandidate is a row holding the maximum score for a card.
type scoreCandidate struct {
	HeatNo  string  `bun:"heat_no"`
	Athlete string  `bun:"athlete"`
	Score   float64 `bun:"score"`
	Type    string  `bun:"score_type"`
}

// summarizeBest turns the rows holding the maximum into a card value. One
// holder is named with its heat; a tie reads "Multiple". With describe set,
// the move type is reported when every holder shares it.
func summarizeBest(cands []scoreCandidate, describe bool) models.BestScore {
	if len(cands) == 0 {
		return models.EmptyBestScore()
	}

	best := cands[0].Score
	for _, c := range cands[1:] {
		if c.Score > best {
			best = c.Score
		}
	}
	var top []scoreCandidate
	for _, c := range cands {
		if c.Score == best {
			top = append(top, c)
		}
	}

	out := models.BestScore{Score: best}
	if len(top) == 1 {
		out.Subtitle = fmt.Sprintf("%s - Heat %s", top[0].Athlete, top[0].HeatNo)
	} else {
		out.Subtitle = models.SubtitleMultiple
		out.IsMultiple = true
	}

	if describe {
		out.Description = top[0].Type
		for _, c := range top[1:] {
			if c.Type != out.Description {
				out.Description = ""
				break
			}
		}
	}
	return out
}

// best answers a card endpoint: the filter defaults are applied, the rows at
// the maximum are fetched, and a failure yields the empty card.
func (h *Handler) best(c echo.Context, endpoint string, describe bool, query func(bdb *bun.DB, f Filter) *bun.SelectQuery) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}
	f = f.WithDefaults(h.defaults)

	var cands []scoreCandidate
	if !h.read(c, endpoint, f, func(ctx context.Context, bdb *bun.DB) error {
		return query(bdb, f).Scan(ctx, &cands)
	}) {
		return ok(c, models.EmptyBestScore())
	}
	return ok(c, summarizeBest(cands, describe))
}

// BestHeatScore reports the highest heat total for an event and gender.
func (h *Handler) BestHeatScore(c echo.Context) error {
	return h.best(c, "best-heat-score", false, bestHeatQuery)
}

// BestWaveScore reports the highest counting wave score.
func (h *Handler) BestWaveScore(c echo.Context) error {
	return h.best(c, "best-wave-score", false, func(bdb *bun.DB, f Filter) *bun.SelectQuery {
		return bestMoveQuery(bdb, f, "= ?")
	})
}

// BestJumpScore reports the highest counting jump score and names the move.
func (h *Handler) BestJumpScore(c echo.Context) error {
	return h.best(c, "best-jump-score", true, func(bdb *bun.DB, f Filter) *bun.SelectQuery {
		return bestMoveQuery(bdb, f, "<> ?")
	})
}

func bestHeatQuery(bdb *bun.DB, f Filter) *bun.SelectQuery {
	peak := bdb.NewSelect().
		TableExpr("? AS m", heatTotals).
		ColumnExpr("MAX(m.total_points)").
		Where("m.gender = ?", f.Gender).
		Where("m.event_id = ?", f.EventID)

	return bdb.NewSelect().
		Model((*models.HeatTotal)(nil)).
		ColumnExpr("vht.heat_no, vht.athlete, vht.total_points AS score").
		Where("vht.gender = ?", f.Gender).
		Where("vht.event_id = ?", f.EventID).
		Where("vht.total_points = (?)", peak).
		OrderExpr("vht.heat_no ASC, vht.athlete ASC")
}

// bestMoveQuery selects the counting scores at the maximum among rows whose
// type compares to "Wave" with cmp.
func bestMoveQuery(bdb *bun.DB, f Filter, cmp string) *bun.SelectQuery {
	peak := bdb.NewSelect().
		TableExpr("? AS m", heatScores).
		ColumnExpr("MAX(m.score)").
		Where("m.gender = ?", f.Gender).
		Where("m.event_id = ?", f.EventID).
		Where("m.counting = ?", models.CountingYes).
		Where("m.type "+cmp, models.ScoreTypeWave)

	return bdb.NewSelect().
		Model((*models.HeatScore)(nil)).
		ColumnExpr("vhs.heat_no, vhs.athlete, vhs.score, vhs.type AS score_type").
		Where("vhs.gender = ?", f.Gender).
		Where("vhs.event_id = ?", f.EventID).
		Where("vhs.counting = ?", models.CountingYes).
		Where("vhs.type "+cmp, models.ScoreTypeWave).
		Where("vhs.score = (?)", peak).
		OrderExpr("vhs.heat_no ASC, vhs.athlete ASC")
}

// BestHeatScores lists each sailor's best heat total per event category.
func (h *Handler) BestHeatScores(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.BestHeatScoreRow
	if !h.read(c, "best-heat-scores", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.HeatData)(nil)).
			ColumnExpr("phd.sailor_name, MAX(phd.total_points) AS best_score").
			ColumnExpr("ec.event_name, phd.category_code").
			Join("LEFT JOIN ? AS ec ON phd.category_code = ec.category_code", eventCategories)
		if f.Athlete != "" {
			q.Where("phd.sailor_name = ?", f.Athlete)
		}
		if f.EventID != 0 {
			q.Where("ec.event_id = ?", f.EventID)
		}
		return q.GroupExpr("phd.sailor_name, ec.event_name, phd.category_code").
			OrderExpr("best_score DESC, phd.sailor_name ASC").
			Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}

// BestJumpsWaves lists individual scored waves or jumps, highest first.
// typeCat narrows to waves ("Wave") or to every other move ("Jump").
func (h *Handler) BestJumpsWaves(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.BestJumpWaveRow
	if !h.read(c, "best-jumps-waves", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.HeatScore)(nil)).
			ColumnExpr("vhs.heat_no, vhs.athlete, vhs.score, vhs.counting, vhs.type AS score_type")
		if f.EventID != 0 {
			q.Where("vhs.event_id = ?", f.EventID)
		}
		if f.Gender != "" {
			q.Where("vhs.gender = ?", f.Gender)
		}
		switch f.TypeCat {
		case models.ScoreTypeWave:
			q.Where("vhs.type = ?", models.ScoreTypeWave)
		case models.ScoreTypeJump:
			q.Where("vhs.type <> ?", models.ScoreTypeWave)
		}
		return q.OrderExpr("vhs.score DESC, vhs.heat_no ASC, vhs.athlete ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}
