package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binaahub/binaa-core/internal/index"
)

// ProviderRow is one directory search hit.
type ProviderRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// NewProvidersCommand creates the providers command.
func NewProvidersCommand(rootOpts *RootOptions) *cobra.Command {
	var criteria index.Criteria

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Search the service provider directory",
		Long:  `Search the service provider directory through the inverted index.

All given criteria must match (AND semantics); with no criteria every
provider is listed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProviders(rootOpts, criteria, cmd)
		},
	}

	cmd.Flags().StringVar(&criteria.Category, "category", "", "service category")
	cmd.Flags().StringVar(&criteria.Skill, "skill", "", "required skill")
	cmd.Flags().StringVar(&criteria.Location, "location", "", "provider location")
	cmd.Flags().StringVar(&criteria.Availability, "availability", "", "availability window")
	cmd.Flags().StringVar(&criteria.ProviderType, "type", "", "provider type")

	return cmd
}

func runProviders(opts *RootOptions, criteria index.Criteria, cmd *cobra.Command) error {
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

	ctx := cmd.Context()
	rows := make([]ProviderRow, 0)
	for _, id := range p.Index.QueryProviders(ctx, criteria) {
		row := ProviderRow{ID: id}
		if sp, ok := p.Repos.Providers.GetByID(ctx, id); ok {
			row.Name = sp.Name
			row.Location = sp.Location
		}
		rows = append(rows, row)
	}

	if formatter.Format == "json" {
		return formatter.Success(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(formatter.Writer, "no providers matched")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(formatter.Writer, "%-30s %-25s %s\n", row.ID, row.Name, row.Location)
	}
	return nil
}
