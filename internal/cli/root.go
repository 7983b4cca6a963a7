package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/fnkit/internal/infra/logger"
	"github.com/aalvaropc/fnkit/internal/infra/workspacefinder"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app holds the global flags and the log file opened for one command.
type app struct {
	debug     bool
	workspace string
	closeLog  func() error
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fnkit",
		Short:         "fnkit: sample functions and their compatibility kit",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			a.setupLogging()
			if p := logger.Path(); a.debug && p != "" {
				fmt.Fprintf(c.ErrOrStderr(), "debug log: %s\n", p)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable verbose logging to .fnkit/logs/fnkit.log")
	cmd.PersistentFlags().StringVarP(&a.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		a.runCmd(),
		a.invokeCmd(),
		a.listCmd(),
		a.validateCmd(),
		a.initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging opens the workspace log file when a workspace can be found.
// Without one, logs are discarded.
func (a *app) setupLogging() {
	root := strings.TrimSpace(a.workspace)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		found, err := workspacefinder.NewFinder().FindRoot(wd)
		if err != nil {
			return
		}
		root = found
	} else if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	if _, err := os.Stat(filepath.Join(root, workspacefinder.ConfigFile)); err != nil {
		return
	}

	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: a.debug})
	if err == nil {
		a.closeLog = cleanup
	}
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}
