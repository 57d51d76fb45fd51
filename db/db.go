package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/models"
)

// ErrClosed is returned by Pool.DB after Close.
var ErrClosed = errors.New("db: pool closed")

// defaultConnectTimeout bounds a connection attempt when no query timeout is
// configured.
const defaultConnectTimeout = 10 * time.Second

// Open opens a bun handle for the configured driver. The MySQL dialect reads
// the server version while opening, so network drivers get dial, read and
// write timeouts of cfg.QueryTimeout unless the DSN sets its own.
func Open(cfg *config.Config) (*bun.DB, error) {
	var bdb *bun.DB

	switch cfg.Driver {
	case config.DriverMySQL:
		mc, err := mysql.ParseDSN(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		if cfg.QueryTimeout > 0 {
			if mc.Timeout == 0 {
				mc.Timeout = cfg.QueryTimeout
			}
			if mc.ReadTimeout == 0 {
				mc.ReadTimeout = cfg.QueryTimeout
			}
			if mc.WriteTimeout == 0 {
				mc.WriteTimeout = cfg.QueryTimeout
			}
		}
		connector, err := mysql.NewConnector(mc)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		bdb = bun.NewDB(sql.OpenDB(connector), mysqldialect.New())
	case config.DriverPostgres:
		opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN())}
		if cfg.QueryTimeout > 0 {
			opts = append(opts, pgdriver.WithTimeout(cfg.QueryTimeout))
		}
		sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
		bdb = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		bdb = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}

	bdb.SetMaxOpenConns(cfg.MaxOpenConns)
	bdb.SetMaxIdleConns(cfg.MaxOpenConns)

	if cfg.Debug {
		bdb.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return bdb, nil
}

// Pool owns the process-wide database handle. The handle is opened and
// pinged on first use by a single background attempt; callers wait for it
// only as long as their context allows. A failed attempt is not remembered
// so the next caller retries. Close releases the handle.
type Pool struct {
	cfg *config.Config
	log *zap.Logger

	mu      sync.Mutex
	db      *bun.DB
	pending *attempt
	closed  bool
}

// attempt is one in-flight connection. done is closed once db or err is set.
type attempt struct {
	done chan struct{}
	db   *bun.DB
	err  error
}

// NewPool returns a pool for cfg. It does no I/O.
func NewPool(cfg *config.Config, log *zap.Logger) *Pool {
	return &Pool{cfg: cfg, log: log}
}

// FromDB wraps an already open handle.
func FromDB(bdb *bun.DB) *Pool {
	return &Pool{db: bdb, log: zap.NewNop()}
}

// DB returns the shared handle, connecting on first use. It returns early
// with ctx's error if ctx ends before the connection is ready; the attempt
// keeps running and later callers share it.
func (p *Pool) DB(ctx context.Context) (*bun.DB, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	if p.db != nil {
		bdb := p.db
		p.mu.Unlock()
		return bdb, nil
	}
	a := p.pending
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		p.pending = a
		go p.connect(a)
	}
	p.mu.Unlock()

	select {
	case <-a.done:
		return a.db, a.err
	case <-ctx.Done():
		return nil, fmt.Errorf("connect to database: %w", ctx.Err())
	}
}

func (p *Pool) connect(a *attempt) {
	timeout := p.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	bdb, err := Open(p.cfg)
	if err == nil {
		if err = bdb.PingContext(ctx); err != nil {
			_ = bdb.Close()
			err = fmt.Errorf("connect to database: %w", err)
		}
	}

	p.mu.Lock()
	p.pending = nil
	switch {
	case err != nil:
		a.err = err
		p.log.Warn("database connection failed", zap.String("driver", p.cfg.Driver), zap.Error(err))
	case p.closed:
		_ = bdb.Close()
		a.err = ErrClosed
	default:
		a.db = bdb
		p.db = bdb
		p.log.Info("database connected",
			zap.String("driver", p.cfg.Driver),
			zap.Int("max_open_conns", p.cfg.MaxOpenConns),
		)
	}
	p.mu.Unlock()
	close(a.done)
}

// Ping checks that the database answers.
func (p *Pool) Ping(ctx context.Context) error {
	bdb, err := p.DB(ctx)
	if err != nil {
		return err
	}
	return bdb.PingContext(ctx)
}

// Close shuts the pool down. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// Relations lists the models of every relation the API reads, base tables first.
func Relations() []interface{} {
	return []interface{}{
		(*models.EventCategory)(nil),
		(*models.EventEntry)(nil),
		(*models.HeatData)(nil),
		(*models.Heatsheet)(nil),
		(*models.AthleteResult)(nil),
		(*models.HeatTotal)(nil),
		(*models.HeatScore)(nil),
		(*models.EventResult)(nil),
	}
}

// CreateTables creates a table for every relation the API reads. The
// aggregation views become plain tables, which is all the query layer needs.
// Used for local mirrors and tests, never against the production schema.
func CreateTables(ctx context.Context, bdb *bun.DB) error {
	for _, model := range Relations() {
		if _, err := bdb.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}
	return nil
}
