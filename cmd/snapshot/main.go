// cmd/snapshot/main.go
// Copies the relations the stats API reads from the production MySQL
// database into the configured database.
//
// Usage:
//
//	SNAPSHOT_SOURCE_DSN="user:pass@tcp(host:3306)/jfa_heatwave_db?parseTime=true" \
//	DB_DRIVER=sqlite DATABASE_URL=heatwave.db \
//	go run ./cmd/snapshot [-schedule "@every 6h"]
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/db"
	applog "github.com/padraicbc/heatwave/logger"
	"github.com/padraicbc/heatwave/snapshot"
)

func main() {
	schedule := flag.String("schedule", "", `cron spec to keep refreshing on, e.g. "0 */6 * * *"`)
	flag.Parse()

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.SnapshotSourceDSN == "" {
		logger.Fatal("SNAPSHOT_SOURCE_DSN required, e.g.: user:pass@tcp(host:3306)/jfa_heatwave_db?parseTime=true")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MySQL source ---
	myDB, err := sql.Open("mysql", cfg.SnapshotSourceDSN)
	if err != nil {
		logger.Fatal("open source", zap.Error(err))
	}
	myDB.SetMaxOpenConns(4)
	src := bun.NewDB(myDB, mysqldialect.New())
	defer src.Close()
	if err := src.PingContext(ctx); err != nil {
		logger.Fatal("ping source", zap.Error(err))
	}
	logger.Info("connected to source")

	// --- target ---
	dst, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("open target", zap.Error(err))
	}
	defer dst.Close()
	if err := db.CreateTables(ctx, dst); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}
	logger.Info("connected to target", zap.String("driver", cfg.Driver))

	refresh := func() {
		if err := snapshot.Run(ctx, src, dst, logger); err != nil {
			logger.Error("snapshot failed", zap.Error(err))
			return
		}
		logger.Info("snapshot complete")
	}

	if *schedule == "" {
		refresh()
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(*schedule, refresh); err != nil {
		logger.Fatal("invalid schedule", zap.String("schedule", *schedule), zap.Error(err))
	}
	refresh()
	c.Start()
	logger.Info("refreshing on schedule", zap.String("schedule", *schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("snapshot scheduler stopped")
}
