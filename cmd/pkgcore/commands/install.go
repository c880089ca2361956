package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgcore/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [name@constraint...]",
		Short: "Resolve, download, verify and cache dependencies",
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
			res, err := a.Install(cmd.Context(), deps, app.InstallOptions{Dest: dest})
			if res != nil && res.Report != nil {
				r := res.Report
				_, _ = fmt.Fprintf(cmd.OutOrStdout(),
					"%d packages: %d cached, %d downloaded (%d bytes), %d failed in %s\n",
					r.Packages, r.Cached, r.Downloaded, r.BytesDownloaded, r.Failed, r.Duration.Round(time.Millisecond))
			}
			return err
		},
	}
	addDependencyFlags(cmd)
	cmd.Flags().StringP("dest", "d", "node_modules", "Install destination directory")
	return cmd
}
