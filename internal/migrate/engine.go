package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/repo"
)

// InitialVersion is assumed when no version has ever been stored.
const InitialVersion = "0.0.0"

// Env is what a migration step works with: raw KV for reading legacy
// shapes, repositories for writing current ones.
type Env struct {
	KV    kv.Adapter
	Repos *repo.Set
	Log   *slog.Logger
}

// Step is one idempotent transform keyed to a target version.
type Step struct {
	Version string
	Name    string
	Run     func(ctx context.Context, env Env) error
}

// Engine runs the pending steps against one store.
type Engine struct {
	env   Env
	steps []Step
}

// New creates an engine with the standard step list.
func New(adapter kv.Adapter, repos *repo.Set, log *slog.Logger) *Engine {
	return NewWithSteps(adapter, repos, log, Steps())
}

// NewWithSteps creates an engine with an explicit step list; tests use this
// to inject failing or counting steps.
func NewWithSteps(adapter kv.Adapter, repos *repo.Set, log *slog.Logger, steps []Step) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		env:   Env{KV: adapter, Repos: repos, Log: log},
		steps: steps,
	}
}

// CurrentVersion reads the stored schema version, defaulting to
// InitialVersion when absent.
func (e *Engine) CurrentVersion(ctx context.Context) string {
	raw := e.env.KV.Get(ctx, model.KeyDataVersion)
	if raw == nil {
		return InitialVersion
	}
	// Tolerate both plain and JSON-quoted storage of the scalar.
	v := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if v == "" {
		return InitialVersion
	}
	return v
}

// Run executes every step whose target version exceeds the stored version,
// in order. Step failures are logged, later steps still run, and the
// stored version advances only through the unbroken prefix of successes.
// Returns the version the store ends at.
func (e *Engine) Run(ctx context.Context) string {
	current := e.CurrentVersion(ctx)
	blocked := false

	for _, step := range e.steps {
		if CompareVersions(step.Version, current) <= 0 {
			continue
		}
		if err := e.runStep(ctx, step); err != nil {
			e.env.Log.Error("migration step failed",
				"step", step.Name, "version", step.Version, "err", err)
			blocked = true
			continue
		}
		e.env.Log.Info("migration step applied", "step", step.Name, "version", step.Version)
		if !blocked {
			if e.env.KV.Set(ctx, model.KeyDataVersion, []byte(step.Version)) {
				current = step.Version
			} else {
				// The step itself converged, so losing the bump only
				// costs a redundant re-run next boot.
				blocked = true
			}
		}
	}
	return current
}

// runStep isolates one step, converting panics into errors so a broken
// step cannot take the boot down.
func (e *Engine) runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step %s panicked: %v", step.Name, r)
		}
	}()
	return step.Run(ctx, e.env)
}
