package cli

import (
	"context"
	"fmt"

	"github.com/binaahub/binaa-core/internal/portal"
)

// openPortal opens the store named by the global --db flag. Migrations run
// as part of Open, so every command sees a current-schema store.
func openPortal(ctx context.Context, opts *RootOptions, extra ...portal.Option) (*portal.Portal, error) {
	popts := append([]portal.Option{portal.WithLogger(opts.logger())}, extra...)
	p, err := portal.Open(ctx, opts.DBPath, popts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open store %s", opts.DBPath), err)
	}
	return p, nil
}
