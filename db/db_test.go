package db_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/db"
	"github.com/padraicbc/heatwave/db/dbtest"
	"github.com/padraicbc/heatwave/models"
)

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool over an in-memory sqlite database", t, func() {
		pool := db.NewPool(dbtest.Config(), zap.NewNop())
		defer pool.Close()

		Convey("The handle is opened lazily and shared", func() {
			first, err := pool.DB(ctx)
			So(err, ShouldBeNil)
			second, err := pool.DB(ctx)
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
			So(pool.Ping(ctx), ShouldBeNil)
		})

		Convey("Close is idempotent and later calls fail", func() {
			_, err := pool.DB(ctx)
			So(err, ShouldBeNil)
			So(pool.Close(), ShouldBeNil)
			So(pool.Close(), ShouldBeNil)

			_, err = pool.DB(ctx)
			So(err, ShouldEqual, db.ErrClosed)
			So(pool.Ping(ctx), ShouldNotBeNil)
		})
	})

	Convey("Given a database that cannot be opened", t, func() {
		cfg := dbtest.Config()
		cfg.DatabaseURL = filepath.Join(t.TempDir(), "missing", "dir", "stats.db")
		pool := db.NewPool(cfg, zap.NewNop())
		defer pool.Close()

		Convey("The failure is reported and not remembered", func() {
			_, err := pool.DB(ctx)
			So(err, ShouldNotBeNil)

			cfg.DatabaseURL = ":memory:"
			bdb, err := pool.DB(ctx)
			So(err, ShouldBeNil)
			So(bdb, ShouldNotBeNil)
		})
	})
}

func TestPoolUnresponsiveServer(t *testing.T) {
	Convey("Given a MySQL server that accepts connections and never answers", t, func() {
		pool := db.NewPool(dbtest.Unresponsive(t, 200*time.Millisecond), zap.NewNop())
		defer pool.Close()

		Convey("Concurrent callers give up at their own deadline", func() {
			errs := make([]error, 5)
			var wg sync.WaitGroup
			start := time.Now()
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
					defer cancel()
					_, errs[i] = pool.DB(ctx)
				}(i)
			}
			wg.Wait()

			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			for _, err := range errs {
				So(err, ShouldNotBeNil)
			}
		})

		Convey("The connection attempt is bounded by the query timeout", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			start := time.Now()
			_, err := pool.DB(ctx)
			So(err, ShouldNotBeNil)
			So(ctx.Err(), ShouldBeNil)
			So(time.Since(start), ShouldBeLessThan, 5*time.Second)
		})

		Convey("Close does not wait for a stalled attempt", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, err := pool.DB(ctx)
			So(err, ShouldNotBeNil)

			start := time.Now()
			So(pool.Close(), ShouldBeNil)
			So(time.Since(start), ShouldBeLessThan, 100*time.Millisecond)

			_, err = pool.DB(context.Background())
			So(err, ShouldEqual, db.ErrClosed)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("An unknown driver is rejected", t, func() {
		_, err := db.Open(&config.Config{Driver: "oracle", MaxOpenConns: 1})
		So(err, ShouldNotBeNil)
	})
}

func TestCreateTables(t *testing.T) {
	Convey("Given a fresh database", t, func() {
		bdb := dbtest.Open(t)
		ctx := context.Background()

		Convey("Every relation the API reads exists and is empty", func() {
			for _, model := range db.Relations() {
				n, err := bdb.NewSelect().Model(model).Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			}
		})

		Convey("Creating again is a no-op", func() {
			So(db.CreateTables(ctx, bdb), ShouldBeNil)
		})

		Convey("Rows round trip through the models", func() {
			dbtest.Insert(t, bdb, &[]models.HeatTotal{
				{HeatNo: "12a", Athlete: "A. Sailor", WavePoints: 10, JumpPoints: 8.5, TotalPoints: 18.5, Gender: "Men", EventID: 374},
			})
			var got []models.HeatTotal
			So(bdb.NewSelect().Model(&got).Scan(ctx), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].TotalPoints, ShouldEqual, 18.5)
		})

		Convey("Event results keep the sailor's name and placing", func() {
			dbtest.Insert(t, bdb, &[]models.EventEntry{
				{EventID: 374, Discipline: "wave", SailorName: "Marcilio Browne", SailorHref: "/sailors/browne", Position: 1},
			})
			var got []models.EventEntry
			So(bdb.NewSelect().Model(&got).Scan(ctx), ShouldBeNil)
			So(got, ShouldResemble, []models.EventEntry{
				{EventID: 374, Discipline: "wave", SailorName: "Marcilio Browne", SailorHref: "/sailors/browne", Position: 1},
			})
		})
	})
}
