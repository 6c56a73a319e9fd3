package database

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/resilience"
)

const (
	driverName = "postgres"
	probeQuery = "SELECT 1 AS test"
)

// QueryObserver receives the outcome of every statement run through the provider.
type QueryObserver interface {
	ObserveQuery(op string, took time.Duration, err error)
}

type opener func(ctx context.Context, cfg Config) (*sqlx.DB, error)

// Provider owns the process-wide connection pool. The pool is opened on first
// use, probed, and kept; a failed attempt is retried by the next caller.
type Provider struct {
	cfg      Config
	logger   *logging.Logger
	breaker  *resilience.CircuitBreaker
	observer QueryObserver
	open     opener

	// openMu serializes opening; readers load db without it.
	openMu sync.Mutex
	db     atomic.Pointer[sqlx.DB]
}

type Option func(*Provider)

func WithQueryObserver(o QueryObserver) Option {
	return func(p *Provider) {
		p.observer = o
	}
}

func NewProvider(cfg Config, logger *logging.Logger, opts ...Option) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = cfg.withDefaults()

	p := &Provider{
		cfg:    cfg,
		logger: logger.Named("database"),
		open:   openPostgres,
	}
	if cfg.CircuitBreaker.Enabled {
		p.breaker = resilience.NewCircuitBreaker("postgres", cfg.CircuitBreaker)
		p.breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
			p.logger.Warn("database circuit breaker state changed", "breaker", name, "from", from, "to", to)
		})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Configured() bool {
	return p.cfg.Configured()
}

// Pool returns the shared pool, opening it on first use. Concurrent first
// callers wait on the same attempt instead of opening two pools.
func (p *Provider) Pool(ctx context.Context) (*sqlx.DB, error) {
	if !p.cfg.Configured() {
		return nil, errors.Mark(errors.New("database is not configured"), ErrConnectionUnavailable)
	}

	if db := p.db.Load(); db != nil {
		return db, nil
	}

	p.openMu.Lock()
	defer p.openMu.Unlock()

	if db := p.db.Load(); db != nil {
		return db, nil
	}

	var db *sqlx.DB
	err := p.guard(func() error {
		var openErr error
		db, openErr = p.open(ctx, p.cfg)
		return openErr
	}, func(err error) bool { return !errors.Is(err, context.Canceled) })
	if err != nil {
		p.logger.WarnContext(ctx, "database pool unavailable", "dsn", p.cfg.RedactedDSN(), "error", err)
		return nil, connectionUnavailable(err, "open database pool")
	}

	p.db.Store(db)
	p.logger.InfoContext(ctx, "database pool ready",
		"dsn", p.cfg.RedactedDSN(),
		"max_open_conns", p.cfg.MaxOpenConns,
	)
	return db, nil
}

// Select runs a multi-row query into dest.
func (p *Provider) Select(ctx context.Context, op string, dest any, query string, args ...any) error {
	return p.run(ctx, op, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, dest, query, args...)
	})
}

// Get runs a single-row query into dest. sql.ErrNoRows is returned unmarked.
func (p *Provider) Get(ctx context.Context, op string, dest any, query string, args ...any) error {
	return p.run(ctx, op, func(db *sqlx.DB) error {
		return db.GetContext(ctx, dest, query, args...)
	})
}

func (p *Provider) run(ctx context.Context, op string, fn func(db *sqlx.DB) error) error {
	db, err := p.Pool(ctx)
	if err != nil {
		p.observe(op, 0, err)
		return err
	}

	start := time.Now()
	err = p.guard(func() error { return fn(db) }, isConnectionError)
	p.observe(op, time.Since(start), err)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		return connectionUnavailable(err, op)
	case isNoRows(err):
		return err
	default:
		return queryFailed(err, op)
	}
}

func (p *Provider) guard(fn func() error, countable func(error) bool) error {
	if p.breaker == nil {
		return fn()
	}
	return p.breaker.Execute(fn, countable)
}

func (p *Provider) observe(op string, took time.Duration, err error) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveQuery(op, took, err)
}

// TestConnection reports whether a trivial query round-trips. It never returns an error.
func (p *Provider) TestConnection(ctx context.Context) bool {
	var result struct {
		Test int `db:"test"`
	}
	if err := p.Get(ctx, "test_connection", &result, probeQuery); err != nil {
		p.logger.WarnContext(ctx, "database connection test failed", "error", err)
		return false
	}
	return result.Test == 1
}

// PoolStats is the diagnostic view served on the admin debug endpoint.
type PoolStats struct {
	Configured         bool                        `json:"configured"`
	Connected          bool                        `json:"connected"`
	DSN                string                      `json:"dsn,omitempty"`
	MaxOpenConnections int                         `json:"maxOpenConnections"`
	OpenConnections    int                         `json:"openConnections"`
	InUse              int                         `json:"inUse"`
	Idle               int                         `json:"idle"`
	WaitCount          int64                       `json:"waitCount"`
	WaitDuration       string                      `json:"waitDuration"`
	Breaker            *resilience.CircuitSnapshot `json:"breaker,omitempty"`
}

func (p *Provider) Stats() PoolStats {
	out := PoolStats{
		Configured:         p.cfg.Configured(),
		DSN:                p.cfg.RedactedDSN(),
		MaxOpenConnections: p.cfg.MaxOpenConns,
		WaitDuration:       time.Duration(0).String(),
	}
	if p.breaker != nil {
		snap := p.breaker.Snapshot()
		out.Breaker = &snap
	}

	db := p.db.Load()
	if db == nil {
		return out
	}

	s := db.Stats()
	out.Connected = true
	out.OpenConnections = s.OpenConnections
	out.InUse = s.InUse
	out.Idle = s.Idle
	out.WaitCount = s.WaitCount
	out.WaitDuration = s.WaitDuration.String()
	return out
}

func (p *Provider) Close() error {
	p.openMu.Lock()
	defer p.openMu.Unlock()

	db := p.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Close()
}

func openPostgres(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	if _, err := pq.ParseURL(dsn); err != nil {
		return nil, errors.Wrap(err, "parse database url")
	}

	db, err := otelsqlx.Open(driverName, dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(cfg.DBName()),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
	defer cancel()

	var probe int
	if err := db.GetContext(probeCtx, &probe, probeQuery); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "probe database")
	}
	return db, nil
}
