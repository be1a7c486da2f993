package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the bun handle. One is constructed at startup and passed to the
// services; there is no package-level instance.
type DB struct {
	*bun.DB
	Driver       string
	QueryTimeout time.Duration // applied by the row helpers
}

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	var (
		sqldb  *sql.DB
		db     *bun.DB
		driver string
		err    error
	)

	switch cfg.Driver {
	case DriverSQLite, "sqlite3", "":
		sqldb, err = sql.Open("sqlite3", sqliteDSN(cfg.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite allows a single writer; one connection keeps statements serialized.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
		driver = DriverSQLite
	case DriverPostgres, "postgresql", "pgx":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for the postgres driver")
		}
		sqldb, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		db = bun.NewDB(sqldb, pgdialect.New())
		driver = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db.AddQueryHook(&queryLogHook{logger: logger})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", driver))

	return &DB{DB: db, Driver: driver, QueryTimeout: cfg.QueryTimeout}, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "zkshop.db"
	}
	return "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// queryLogHook implements bun.QueryHook to surface slow and failing statements
type queryLogHook struct {
	logger *gecho.Logger
}

func (h *queryLogHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if duration > time.Second {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && event.Err != sql.ErrNoRows && isRetryableError(event.Err) {
		h.logger.Warn("Transient database error",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
