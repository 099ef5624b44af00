package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/ericfisherdev/bookreview/internal/config"
)

var (
	// ErrNotConnected is returned by every query when the database could not be opened.
	ErrNotConnected = errors.New("database not connected")
	// ErrSchemaNotReady is returned by Connect's open step when the SQLite
	// migrations could not be applied.
	ErrSchemaNotReady = errors.New("database schema not ready")
)

// mysqlSQLMode keeps the server's mode and adds NO_BACKSLASH_ESCAPES, so a
// backslash in a quoted literal is an ordinary character and doubled single
// quotes are the only escape.
const mysqlSQLMode = "CONCAT(@@sql_mode, ',NO_BACKSLASH_ESCAPES')"

// DB holds the single connection shared by every update. The connection is
// pinned: if the server drops it, queries fail with driver.ErrBadConn and no
// new connection is dialled. Conn is nil when opening failed; queries then
// fail with ErrNotConnected.
type DB struct {
	Conn   *sql.Conn
	pool   *sql.DB
	driver string
}

// Open opens a connection with the given driver name and DSN, verifies it
// with a ping and pins it for the lifetime of the DB.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	return open(ctx, driver, dsn, false)
}

// open is Open with optional SQLite schema bootstrap, which must run on the
// pool before its only connection is pinned.
func open(ctx context.Context, driver, dsn string, migrateSchema bool) (*DB, error) {
	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	pool.SetMaxOpenConns(1)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if migrateSchema {
		if err := RunMigrations(pool); err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("%w: %w", ErrSchemaNotReady, err)
		}
	}

	conn, err := pool.Conn(ctx)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("acquire %s connection: %w", driver, err)
	}

	return &DB{Conn: conn, pool: pool, driver: driver}, nil
}

// Connect opens the database described by cfg. It never fails: a connection
// or schema error is logged and a disconnected DB is returned, so the caller
// keeps running and every later query reports ErrNotConnected. On SQLite the
// embedded migrations are applied before connecting.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) *DB {
	db, err := open(ctx, cfg.DBDriver, DSN(cfg), cfg.DBDriver == config.DriverSQLite)
	if err != nil {
		msg := "Error connecting to database"
		if errors.Is(err, ErrSchemaNotReady) {
			msg = "Error preparing database schema"
		}
		logger.Error(msg, "driver", cfg.DBDriver, "error", err)
		return &DB{driver: cfg.DBDriver}
	}

	logger.Info("Connected to database", "driver", cfg.DBDriver)
	return db
}

// DSN builds the driver-specific data source name for cfg.
func DSN(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverSQLite {
		return fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
			cfg.DBPath,
		)
	}

	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.DBName
	mc.Params = map[string]string{"sql_mode": mysqlSQLMode}
	return mc.FormatDSN()
}

// Connected reports whether the underlying connection was opened successfully.
func (db *DB) Connected() bool {
	return db != nil && db.Conn != nil
}

// Driver returns the driver name the DB was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Close releases the pinned connection and closes the pool. Closing a
// disconnected DB is a no-op.
func (db *DB) Close() error {
	if !db.Connected() {
		return nil
	}

	var firstErr error
	if err := db.Conn.Close(); err != nil {
		firstErr = fmt.Errorf("release %s connection: %w", db.driver, err)
	}
	if err := db.pool.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close %s: %w", db.driver, err)
	}
	return firstErr
}
