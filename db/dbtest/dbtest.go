// Package dbtest provides an in-memory SQLite database shaped like the
// results schema, for tests.
package dbtest

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/db"
)

// Config returns a sqlite config pointing at a private in-memory database.
// A single connection keeps the database alive for the whole test.
func Config() *config.Config {
	return &config.Config{
		Driver:       config.DriverSQLite,
		DatabaseURL:  ":memory:",
		MaxOpenConns: 1,
		QueryTimeout: 5 * time.Second,
	}
}

// Unresponsive returns a MySQL config pointing at a listener that accepts
// connections and never sends a byte, like a server wedged mid-handshake.
// The listener and its connections are closed when the test ends.
func Unresponsive(t testing.TB, timeout time.Duration) *config.Config {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	return &config.Config{
		Driver:       config.DriverMySQL,
		DBUser:       "root",
		DBHost:       host,
		DBPort:       port,
		DBName:       "jfa_heatwave_db",
		MaxOpenConns: 2,
		QueryTimeout: timeout,
	}
}

// Open returns an empty database with every relation created. It is closed
// when the test ends.
func Open(t testing.TB) *bun.DB {
	t.Helper()

	bdb, err := db.Open(Config())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = bdb.Close() })

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return bdb
}

// Insert loads fixture rows. rows must be a pointer to a slice of models.
func Insert(t testing.TB, bdb *bun.DB, rows interface{}) {
	t.Helper()
	if _, err := bdb.NewInsert().Model(rows).Exec(context.Background()); err != nil {
		t.Fatalf("insert %T: %v", rows, err)
	}
}
