package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/fnkit/internal/usecase"
)

func (a *app) validateCmd() *cobra.Command {
	var suites []string
	var tests []string
	var noBuiltin bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate suites without invoking any function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			all, err := ws.collectSuites(noBuiltin)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateSuites(ws.factory())
			plan, err := uc.Execute(cmd.Context(), all, ws.focus(suites, tests))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK (%d suite(s), %d case(s))\n", len(plan.Suites), plan.CaseCount())
			return nil
		},
	}

	c.Flags().StringSliceVarP(&suites, "suite", "s", nil, "Names of suites to focus")
	c.Flags().StringSliceVarP(&tests, "test", "t", nil, "Names of cases to focus")
	c.Flags().BoolVar(&noBuiltin, "no-builtin", false, "Skip the built-in suites")
	return c
}
