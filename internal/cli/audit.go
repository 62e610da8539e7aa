package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		limit  int
		user   string
		action string
	)

	cmd := &cobra.Command{
		Use:           "audit",
		Short:         "Show recent audit trail entries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, limit, user, action, cmd)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	cmd.Flags().StringVar(&user, "user", "", "filter by acting user id")
	cmd.Flags().StringVar(&action, "action", "", "filter by action (create|update|delete)")

	return cmd
}

func runAudit(opts *RootOptions, limit int, user, action string, cmd *cobra.Command) error {
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
	entries := p.Audit.GetRecent(ctx, limit)
	if user != "" {
		entries = p.Audit.GetByUser(ctx, user)
	}
	if action != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Action == action {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "audit trail is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %-8s %-20s %-28s by %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.EntityType, e.EntityID, e.UserID)
	}
	return nil
}
