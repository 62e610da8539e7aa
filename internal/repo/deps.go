package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/binaahub/binaa-core/internal/ids"
	"github.com/binaahub/binaa-core/internal/kv"
)

// Clock supplies timestamps for created/updated stamps.
// Implemented by SystemClock (production) and testutil.FixedClock (tests).
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Auditor receives one notification per successful mutation.
// The audit log implements it; a nil Auditor disables auditing (used while
// bootstrapping seed data).
type Auditor interface {
	Mutation(ctx context.Context, action, entityType, entityID string, before, after any)
}

// Indexer receives change notifications for indexed entity kinds.
// The index manager implements it; a nil Indexer disables index upkeep.
type Indexer interface {
	EntityChanged(ctx context.Context, kind, id string)
	EntityRemoved(ctx context.Context, kind, id string)
}

// Deps is the explicit configuration a repository set is built from.
// Nothing here is global: two stores built from two Deps never interfere.
type Deps struct {
	KV    kv.Adapter
	IDs   ids.Generator
	Clock Clock
	Audit Auditor // nil: mutations are not audited
	Index Indexer // nil: indexed kinds are not maintained
	Log   *slog.Logger
}

func (d Deps) normalized() Deps {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.IDs == nil {
		d.IDs = ids.NewPrefixGenerator()
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return d
}

// Mutation actions recorded in the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ErrPersistence reports that the KV adapter refused the write.
var ErrPersistence = errors.New("persistence failure")

// ErrInvariant is the base error of create-time invariant violations.
// Match specific violations with errors.Is against the wrapped sentinels
// below, or detect the whole class via errors.Is(err, ErrInvariant).
var ErrInvariant = errors.New("invariant violation")

var (
	// ErrBidderIsOwner reports a proposal whose bidder and owner are the
	// same company.
	ErrBidderIsOwner = fmt.Errorf("%w: bidder company equals owner company", ErrInvariant)

	// ErrMissingContract reports an engagement created without an existing
	// contract.
	ErrMissingContract = fmt.Errorf("%w: engagement requires an existing contract", ErrInvariant)

	// ErrBadParentContract reports a sub-contract whose parent is absent or
	// whose parent's provider is not the sub-contract's buyer.
	ErrBadParentContract = fmt.Errorf("%w: sub-contract parent missing or provider/buyer mismatch", ErrInvariant)

	// ErrContractInUse reports a contract delete refused because live
	// engagements still reference it.
	ErrContractInUse = errors.New("contract still referenced by engagements")
)
