package snapshot

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/db"
	"github.com/padraicbc/heatwave/db/dbtest"
	"github.com/padraicbc/heatwave/models"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a source with more rows than one batch", t, func() {
		src := dbtest.Open(t)
		dst := dbtest.Open(t)

		totals := make([]models.HeatTotal, 0, 2*BatchSize+1)
		for i := 0; i < 2*BatchSize+1; i++ {
			totals = append(totals, models.HeatTotal{
				HeatNo: fmt.Sprintf("%d", i), Athlete: "Sailor", WavePoints: 1, JumpPoints: 2, TotalPoints: 3, Gender: "Men", EventID: 374,
			})
		}
		dbtest.Insert(t, src, &totals)
		dbtest.Insert(t, src, &[]models.HeatData{
			{HeatDataID: 42, CategoryCode: "SYL25-M", SailorName: "Sailor", TotalPoints: 3},
		})

		Convey("Every row reaches the target", func() {
			So(Run(ctx, src, dst, zap.NewNop()), ShouldBeNil)

			n, err := dst.NewSelect().Model((*models.HeatTotal)(nil)).Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2*BatchSize+1)

			var hd []models.HeatData
			So(dst.NewSelect().Model(&hd).Scan(ctx), ShouldBeNil)
			So(hd, ShouldHaveLength, 1)
			So(hd[0].HeatDataID, ShouldEqual, 42)
		})

		Convey("Running again does not duplicate rows", func() {
			So(Run(ctx, src, dst, zap.NewNop()), ShouldBeNil)
			So(Run(ctx, src, dst, zap.NewNop()), ShouldBeNil)

			n, err := dst.NewSelect().Model((*models.HeatTotal)(nil)).Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2*BatchSize+1)
		})

		Convey("Rows gone from the source are dropped from the target", func() {
			dbtest.Insert(t, dst, &[]models.EventResult{{Position: 9, Rider: "Stale", Gender: "Men", EventID: 1}})
			So(Run(ctx, src, dst, zap.NewNop()), ShouldBeNil)

			n, err := dst.NewSelect().Model((*models.EventResult)(nil)).Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})

	Convey("A source missing a relation fails without touching the target", t, func() {
		src := dbtest.Open(t)
		dst := dbtest.Open(t)
		dbtest.Insert(t, dst, &[]models.EventCategory{{CategoryCode: "KEEP", EventID: 1, EventName: "Kept"}})

		_, err := src.NewDropTable().Model((*models.EventCategory)(nil)).Exec(ctx)
		So(err, ShouldBeNil)

		So(Run(ctx, src, dst, zap.NewNop()), ShouldNotBeNil)
		n, err := dst.NewSelect().Model((*models.EventCategory)(nil)).Count(ctx)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 1)
	})

	Convey("Steps cover every relation the API reads", t, func() {
		So(Steps(), ShouldHaveLength, len(db.Relations()))
	})
}
