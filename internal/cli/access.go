package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAccessCommand creates the access command.
func NewAccessCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access <user-id> <feature>",
		Short: "Check whether a user may reach a feature",
		Long:  `Check a user's onboarding stage against a feature gate.

Exit code 0 means allowed, 1 means denied.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccess(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runAccess(opts *RootOptions, userID, feature string, cmd *cobra.Command) error {
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

	decision := p.CheckFeatureAccess(cmd.Context(), userID, feature)
	if formatter.Format == "json" {
		if err := formatter.Success(decision); err != nil {
			return err
		}
	} else if decision.Allowed {
		fmt.Fprintf(formatter.Writer, "allowed: %s may use %s\n", userID, feature)
	} else {
		fmt.Fprintf(formatter.Writer, "denied: %s\n", decision.Reason)
	}

	if !decision.Allowed {
		return NewExitError(ExitFailure, decision.Reason)
	}
	return nil
}
