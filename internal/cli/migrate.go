package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateResult holds the outcome of a migrate run.
type MigrateResult struct {
	Version string `json:"version"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run pending data migrations",
		Long:  `Run every pending data migration against the store.

Opening the store already migrates it, so this command exists to migrate
explicitly (for example before a deploy) and report the resulting version.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
	return cmd
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	p, err := openPortal(cmd.Context(), opts)
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return err
	}
	defer p.Close()

	if formatter.Format == "json" {
		return formatter.Success(MigrateResult{Version: p.SchemaVersion()})
	}
	fmt.Fprintf(formatter.Writer, "store at version %s\n", p.SchemaVersion())
	return nil
}
