package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/logger"
	"github.com/aalvaropc/fnkit/internal/usecase"
)

func (a *app) runCmd() *cobra.Command {
	var suites []string
	var tests []string
	var noSave bool
	var noBuiltin bool
	var format string
	var fanout int

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the built-in and workspace suites against the sample functions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			all, err := ws.collectSuites(noBuiltin)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			opts := []usecase.RunOption{
				usecase.WithLogger(logger.L()),
				usecase.WithFanoutLimit(fanout),
			}
			if ws.store != nil && !noSave {
				opts = append(opts, usecase.WithArtifactStore(ws.store))
			}
			if format == "pretty" {
				opts = append(opts, usecase.WithListener(newConsoleListener(out)))
			}

			uc := usecase.NewRunSuites(ws.factory(), opts...)
			run, runID, err := uc.Execute(cmd.Context(), all, ws.focus(suites, tests))
			if err != nil && len(run.Suites) == 0 {
				return err
			}

			// Partial runs (interrupted, or not saved) are still reported.
			if perr := printRun(out, run, runID, format); perr != nil {
				return perr
			}
			if usecase.IsInterrupted(err) {
				return fmt.Errorf("run interrupted: %w", err)
			}
			if err != nil {
				return err
			}

			if run.Failed() {
				t := run.Tally()
				return fmt.Errorf("run failed (%d hard failure(s), %d technical error(s))",
					t[domain.OutcomeHardFailure], t[domain.OutcomeTechnicalError])
			}
			return nil
		},
	}

	c.Flags().StringSliceVarP(&suites, "suite", "s", nil, "Names of suites to focus")
	c.Flags().StringSliceVarP(&tests, "test", "t", nil, "Names of cases to focus")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().BoolVar(&noBuiltin, "no-builtin", false, "Skip the built-in suites")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().IntVar(&fanout, "fanout-limit", 0, "Max concurrent invocations per fan-out step (0 = unbounded)")
	return c
}

func printRun(w io.Writer, run domain.RunResult, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printSummary(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printSummary(w io.Writer, run domain.RunResult, runID string) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	t := run.Tally()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Passed:    %d\n", t[domain.OutcomePass])
	fmt.Fprintf(w, "Failed:    %d\n", t[domain.OutcomeHardFailure])
	fmt.Fprintf(w, "Warnings:  %d\n", t[domain.OutcomeOptionalFailure])
	fmt.Fprintf(w, "Errors:    %d\n", t[domain.OutcomeTechnicalError])
	fmt.Fprintf(w, "Duration:  %s\n", total.Round(time.Millisecond))
	if runID != "" {
		fmt.Fprintf(w, "Run ID:    %s\n", runID)
	}
}
