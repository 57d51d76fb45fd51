// Package snapshot mirrors the relations the stats API reads from the
// production MySQL database into another database, for local development.
package snapshot

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/models"
)

// BatchSize is the number of rows written per insert.
const BatchSize = 500

// Step copies one relation.
type Step struct {
	Name string
	Copy func(ctx context.Context, src, dst *bun.DB) (int, error)
}

// Steps returns one step per relation, base tables first.
func Steps() []Step {
	return []Step{
		step[models.EventCategory]("PWA_EVENT_CATEGORIES"),
		step[models.EventEntry]("PWA_EVENT_RESULTS"),
		step[models.HeatData]("PWA_HEAT_DATA"),
		step[models.Heatsheet]("PWA_HEATSHEETS"),
		step[models.AthleteResult]("athlete_profile_results"),
		step[models.HeatTotal]("view_heat_totals"),
		step[models.HeatScore]("view_heat_scores"),
		step[models.EventResult]("view_event_results"),
	}
}

func step[T any](name string) Step {
	return Step{Name: name, Copy: copyRelation[T]}
}

// Run executes every step and logs the row count of each. It stops at the
// first failure.
func Run(ctx context.Context, src, dst *bun.DB, log *zap.Logger) error {
	for _, s := range Steps() {
		n, err := s.Copy(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("copy %s: %w", s.Name, err)
		}
		log.Info("relation copied", zap.String("relation", s.Name), zap.Int("rows", n))
	}
	return nil
}

// copyRelation replaces the target relation with the source rows inside one
// transaction, so a failed run leaves the previous copy in place.
func copyRelation[T any](ctx context.Context, src, dst *bun.DB) (int, error) {
	rows, err := src.NewSelect().Model((*T)(nil)).Rows(ctx)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	err = dst.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*T)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("empty target: %w", err)
		}

		batch := make([]T, 0, BatchSize)
		for rows.Next() {
			var r T
			if err := src.ScanRow(ctx, rows, &r); err != nil {
				return err
			}
			batch = append(batch, r)
			if len(batch) >= BatchSize {
				if err := bulkInsert(ctx, tx, batch); err != nil {
					return err
				}
				total += len(batch)
				batch = batch[:0]
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if err := bulkInsert(ctx, tx, batch); err != nil {
			return err
		}
		total += len(batch)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func bulkInsert[T any](ctx context.Context, tx bun.Tx, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.NewInsert().Model(&rows).Exec(ctx)
	return err
}
