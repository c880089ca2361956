package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [name@constraint...]",
		Short: "Audit resolved dependencies without downloading them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := dependencies(cmd, args)
			if err != nil {
				return err
			}
			if len(deps) == 0 {
				_ = cmd.Help()
				return nil
			}
			dest, err := cmd.Flags().GetString("dest")
			if err != nil {
				return err
			}

			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			audits, err := a.Audit(cmd.Context(), deps, dest)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			blocked := 0
			for _, pa := range audits {
				verdict := "ok"
				if pa.Result.Blocked() {
					verdict = "blocked"
					blocked++
				}
				_, _ = fmt.Fprintf(out, "%-40s %-7s risk=%d\n", pa.Package.Key(), verdict, pa.Result.RiskScore)
				for _, issue := range pa.Result.Issues {
					_, _ = fmt.Fprintf(out, "  [%s] %s: %s\n", issue.Severity, issue.Category, issue.Description)
				}
			}
			if blocked > 0 {
				return zerr.With(domain.ErrSecurityViolation, "blocked", blocked)
			}
			return nil
		},
	}
	addDependencyFlags(cmd)
	cmd.Flags().StringP("dest", "d", "node_modules", "Install destination the audit assumes")
	return cmd
}
