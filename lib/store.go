package lib

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store memoizes derivative text by expression.
type Store struct {
	db     *sql.DB
	driver string
}

func OpenStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres store requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Driver == DriverSQLite && dsn == ":memory:" {
		// every new connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, driver: cfg.Driver}
	if cfg.InitSchema {
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.driver
}

// Migrate applies the embedded migrations.
func (s *Store) Migrate(ctx context.Context) error {
	migrations, err := EmbeddedMigrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	if err := RunMigrations(ctx, s.db, s.driver, migrations); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Get returns the stored derivative of expr and counts the hit.
func (s *Store) Get(ctx context.Context, expr string) (string, bool, error) {
	key := stripSpace(expr)
	var derivative string
	row := s.db.QueryRowContext(ctx, rebind(s.driver, "SELECT derivative FROM derivatives WHERE expression = ?"), key)
	if err := row.Scan(&derivative); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get derivative: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, rebind(s.driver, "UPDATE derivatives SET hits = hits + 1 WHERE expression = ?"), key); err != nil {
		return "", false, fmt.Errorf("count hit: %w", err)
	}
	return derivative, true, nil
}

func (s *Store) Put(ctx context.Context, expr string, derivative string) error {
	const query = `
		INSERT INTO derivatives (expression, derivative)
		VALUES (?, ?)
		ON CONFLICT (expression) DO UPDATE SET derivative = excluded.derivative
	`
	if _, err := s.db.ExecContext(ctx, rebind(s.driver, query), stripSpace(expr), derivative); err != nil {
		return fmt.Errorf("put derivative: %w", err)
	}
	return nil
}

type StoreStats struct {
	Expressions int64
	Hits        int64
}

func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	var stats StoreStats
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM derivatives")
	if err := row.Scan(&stats.Expressions, &stats.Hits); err != nil {
		return StoreStats{}, fmt.Errorf("store stats: %w", err)
	}
	return stats, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CachedEngine answers from a Store when it can and records every derivative
// it computes.
type CachedEngine struct {
	engine *Engine
	store  *Store
}

func NewCachedEngine(engine *Engine, store *Store) *CachedEngine {
	return &CachedEngine{engine: engine, store: store}
}

func (c *CachedEngine) Differentiate(ctx context.Context, expr string) (string, error) {
	derivative, ok, err := c.store.Get(ctx, expr)
	if err != nil {
		return "", err
	}
	if ok {
		c.engine.logger.Debug("cache hit", "expr", expr)
		return derivative, nil
	}

	derivative, err = c.engine.Differentiate(expr)
	if err != nil {
		return "", err
	}
	if err := c.store.Put(ctx, expr, derivative); err != nil {
		return "", err
	}
	return derivative, nil
}

func (c *CachedEngine) DifferentiateAndSimplify(ctx context.Context, expr string) (*Node, error) {
	derivative, err := c.Differentiate(ctx, expr)
	if err != nil {
		return nil, err
	}
	return c.engine.SimplifyText(derivative)
}

// Warm stores the derivative of every item in the batches.
func (c *CachedEngine) Warm(ctx context.Context, batches []Batch) (int, error) {
	stored := 0
	for _, batch := range batches {
		for _, item := range batch.Items {
			if err := c.store.Put(ctx, item.Expression, item.Derivative); err != nil {
				return stored, fmt.Errorf("%s:%d: %w", batch.Name, item.Line, err)
			}
			stored++
		}
	}
	return stored, nil
}
