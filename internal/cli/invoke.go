package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/localinvoker"
	"github.com/aalvaropc/fnkit/internal/infra/logger"
)

func (a *app) invokeCmd() *cobra.Command {
	var limit int
	var counterInitial int64
	var showLatency bool

	c := &cobra.Command{
		Use:   "invoke <function> <json-input>",
		Short: "Invoke one sample function and print its JSON output",
		Example: `  fnkit invoke divider 3
  fnkit invoke md5 '"hello"'
  fnkit invoke repeater '{"words":["a","b"],"counts":[2,0]}'
  fnkit invoke repeater '{"words":["x"],"counts":[1000000000]}' --limit 3`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return localinvoker.NewFactory().Functions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			input, err := decodeInput(args[1])
			if err != nil {
				return err
			}

			f := ws.factory(
				localinvoker.WithCounterInitial(counterInitial),
				localinvoker.WithLogger(logger.L()),
			)
			res, err := f.New().Invoke(cmd.Context(), domain.Invocation{
				Function: args[0],
				Input:    input,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			return printInvocation(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, showLatency)
		},
	}

	c.Flags().IntVar(&limit, "limit", 0, "Stop consuming streamed output after n elements (0 = all)")
	c.Flags().Int64Var(&counterInitial, "counter-initial", 0, "Initial value of the counter")
	c.Flags().BoolVar(&showLatency, "latency", false, "Print the invocation latency to stderr")
	return c
}

// decodeInput parses a JSON argument, keeping numbers verbatim.
func decodeInput(arg string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(arg))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &domain.OpError{
			Op:   "cli.invoke",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: input is not valid JSON: %v", domain.ErrInvalidInput, err),
		}
	}
	if dec.More() {
		return nil, &domain.OpError{
			Op:   "cli.invoke",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: input has trailing data", domain.ErrInvalidInput),
		}
	}
	return v, nil
}

func printInvocation(out, errOut io.Writer, res domain.InvocationResult, showLatency bool) error {
	if showLatency {
		fmt.Fprintf(errOut, "latency: %dms\n", res.LatencyMS)
	}

	if res.Error != nil {
		return fmt.Errorf("%s failed (%s): %s", res.Function, res.Error.Kind, res.Error.Message)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, res.Output); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}
