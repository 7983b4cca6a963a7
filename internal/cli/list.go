package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	var noBuiltin bool
	var functions bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suites and their cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			if functions {
				for _, fn := range ws.factory().Functions() {
					fmt.Fprintln(out, fn)
				}
				return nil
			}

			suites, err := ws.collectSuites(noBuiltin)
			if err != nil {
				return err
			}

			if len(suites) == 0 {
				fmt.Fprintln(out, "(no suites found)")
				return nil
			}

			if ws.root != "" {
				fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			}
			for _, s := range suites {
				fmt.Fprintf(out, "%s  %s  (%s)\n", s.Name, s.Description, ws.rel(s.Source))
				for _, c := range s.Cases {
					opt := ""
					if c.Optional {
						opt = " [optional]"
					}
					fmt.Fprintf(out, "  - %s  %s%s\n", c.Name, c.Description, opt)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBuiltin, "no-builtin", false, "Skip the built-in suites")
	cmd.Flags().BoolVar(&functions, "functions", false, "List the invocable functions instead")
	return cmd
}
