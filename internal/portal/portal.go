// Package portal assembles one fully wired store: KV adapter, migration
// engine, audit trail, inverted index and the repository layer, behind a
// single Open call.
package portal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/binaahub/binaa-core/internal/access"
	"github.com/binaahub/binaa-core/internal/audit"
	"github.com/binaahub/binaa-core/internal/ids"
	"github.com/binaahub/binaa-core/internal/index"
	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/migrate"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/repo"
	"github.com/binaahub/binaa-core/internal/seed"
)

// Portal is one open store with every layer wired.
type Portal struct {
	adapter kv.Adapter
	closer  func() error

	Repos   *repo.Set
	Audit   *audit.Log
	Index   *index.Manager
	version string
	log     *slog.Logger
}

type config struct {
	log      *slog.Logger
	clock    repo.Clock
	ids      ids.Generator
	memory   bool
	seed     bool
	maxBytes int
	registry prometheus.Registerer
}

// Option configures Open.
type Option func(*config)

// WithLogger sets the logger used by every layer.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithClock overrides the wall clock. Tests pass a fixed clock to get
// reproducible timestamps.
func WithClock(clock repo.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithIDs overrides the id generator.
func WithIDs(gen ids.Generator) Option {
	return func(c *config) { c.ids = gen }
}

// WithMemoryKV stores everything in memory instead of SQLite. The path
// argument to Open is ignored.
func WithMemoryKV() Option {
	return func(c *config) { c.memory = true }
}

// WithSeed loads the demo fixture after migrations, once per store.
func WithSeed() Option {
	return func(c *config) { c.seed = true }
}

// WithMaxValueBytes caps the size of a stored collection, simulating the
// quota a constrained deployment imposes.
func WithMaxValueBytes(n int) Option {
	return func(c *config) { c.maxBytes = n }
}

// WithMetrics registers the index metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.registry = reg }
}

// Open opens (or creates) the store at path, runs pending migrations,
// optionally seeds it, and returns the wired portal.
func Open(ctx context.Context, path string, opts ...Option) (*Portal, error) {
	cfg := config{
		log:   slog.Default(),
		clock: repo.SystemClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = ids.NewPrefixGenerator()
	}

	var kvOpts []kv.Option
	if cfg.maxBytes > 0 {
		kvOpts = append(kvOpts, kv.WithMaxValueBytes(cfg.maxBytes))
	}

	var adapter kv.Adapter
	closer := func() error { return nil }
	if cfg.memory {
		adapter = kv.NewMemory(kvOpts...)
	} else {
		store, err := kv.Open(path, cfg.log, kvOpts...)
		if err != nil {
			return nil, fmt.Errorf("open store %s: %w", path, err)
		}
		adapter = store
		closer = store.Close
	}

	auditLog := audit.New(adapter, cfg.ids, cfg.clock, cfg.log)
	indexMgr := index.NewManager(adapter, cfg.log)
	if cfg.registry != nil {
		cfg.registry.MustRegister(index.Collectors()...)
	}

	repos := repo.NewSet(repo.Deps{
		KV:    adapter,
		IDs:   cfg.ids,
		Clock: cfg.clock,
		Audit: auditLog,
		Index: indexMgr,
		Log:   cfg.log,
	})

	// Migrations run through an unaudited repository set; schema repair is
	// not user activity.
	migrateRepos := repo.NewSet(repo.Deps{
		KV:    adapter,
		IDs:   cfg.ids,
		Clock: cfg.clock,
		Index: indexMgr,
		Log:   cfg.log,
	})
	engine := migrate.New(adapter, migrateRepos, cfg.log)
	version := engine.Run(ctx)

	if cfg.seed {
		if err := seed.Apply(ctx, migrateRepos); err != nil {
			_ = closer()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	indexMgr.Rebuild(ctx)

	cfg.log.Info("portal open", "path", path, "version", version, "memory", cfg.memory)
	return &Portal{
		adapter: adapter,
		closer:  closer,
		Repos:   repos,
		Audit:   auditLog,
		Index:   indexMgr,
		version: version,
		log:     cfg.log,
	}, nil
}

// SchemaVersion returns the version the store reached at open time.
func (p *Portal) SchemaVersion() string { return p.version }

// KV exposes the underlying adapter for diagnostics.
func (p *Portal) KV() kv.Adapter { return p.adapter }

// CheckFeatureAccess resolves the user and gates the feature by their
// onboarding stage. Unknown users are denied.
func (p *Portal) CheckFeatureAccess(ctx context.Context, userID, feature string) access.Decision {
	user, ok := p.Repos.Users.GetByID(ctx, userID)
	if !ok {
		return access.Decision{Allowed: false, Reason: fmt.Sprintf("unknown user %q", userID)}
	}
	return access.CheckFeatureAccess(user, feature)
}

// WithActor returns a context whose mutations are attributed to userID in
// the audit trail.
func (p *Portal) WithActor(ctx context.Context, userID string) context.Context {
	return model.WithActor(ctx, userID)
}

// PruneSessions drops expired sessions. Callers run it periodically.
func (p *Portal) PruneSessions(ctx context.Context) int {
	return p.Repos.Sessions.PruneExpired(ctx)
}

// Close releases the underlying store.
func (p *Portal) Close() error {
	return p.closer()
}
