package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [name@constraint...]",
		Short: "Resolve dependencies into a flat package graph",
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

			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			graph, err := a.Resolve(cmd.Context(), deps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(graph.Packages())
			}
			for _, pkg := range graph.Packages() {
				_, _ = fmt.Fprintln(out, pkg.Key())
			}
			_, _ = fmt.Fprintf(out, "resolved %d packages\n", graph.Len())
			return nil
		},
	}
	addDependencyFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the resolved packages as JSON")
	return cmd
}
