package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binaahub/binaa-core/internal/portal"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo fixture into the store",
		Long:  `Load the embedded demo fixture into the store.

Seeding is idempotent: records already present by id are left alone, so
running seed twice changes nothing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}
	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	p, err := openPortal(cmd.Context(), opts, portal.WithSeed())
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return err
	}
	defer p.Close()

	users := len(p.Repos.Users.GetAll(cmd.Context()))
	providers := len(p.Repos.Providers.GetAll(cmd.Context()))
	if formatter.Format == "json" {
		return formatter.Success(map[string]int{"users": users, "providers": providers})
	}
	fmt.Fprintf(formatter.Writer, "seeded: %d users, %d providers\n", users, providers)
	return nil
}
