package localinvoker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/samples"
)

type function func(ctx context.Context, inv *Invoker, raw json.RawMessage, limit int) (any, error)

var registry = map[string]function{
	domain.FunctionDelay:    unary(callDelay),
	domain.FunctionCounter:  unary(callCounter),
	domain.FunctionDivider:  unary(callDivider),
	domain.FunctionMD5:      unary(callMD5),
	domain.FunctionRepeater: unary(callRepeater),
}

// unary decodes raw into In before handing it to fn.
func unary[In, Out any](fn func(context.Context, *Invoker, In, int) (Out, error)) function {
	return func(ctx context.Context, inv *Invoker, raw json.RawMessage, limit int) (any, error) {
		var in In
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, &decodeError{err: err}
		}
		return fn(ctx, inv, in, limit)
	}
}

func callDelay(ctx context.Context, _ *Invoker, ms int, _ int) (int, error) {
	return samples.Delay(ctx, ms)
}

func callCounter(_ context.Context, inv *Invoker, delta int64, _ int) (int64, error) {
	return inv.counter.Add(delta), nil
}

func callDivider(_ context.Context, _ *Invoker, divisor int, _ int) (int, error) {
	return samples.Divide(divisor)
}

func callMD5(_ context.Context, _ *Invoker, s string, _ int) (string, error) {
	return samples.Digest([]byte(s)), nil
}

type repeaterInput struct {
	Words  []string `json:"words"`
	Counts []int    `json:"counts"`
}

func callRepeater(ctx context.Context, inv *Invoker, in repeaterInput, limit int) ([]string, error) {
	out := []string{}
	for w := range samples.Repeat(slices.Values(in.Words), slices.Values(in.Counts)) {
		if err := ctx.Err(); err != nil {
			return nil, &domain.OpError{
				Op:   "localinvoker.repeater",
				Kind: domain.KindInterrupted,
				Err:  fmt.Errorf("%w: %w", domain.ErrInterrupted, err),
			}
		}
		if inv.maxElements > 0 && len(out) >= inv.maxElements {
			return nil, &domain.OpError{
				Op:   "localinvoker.repeater",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("output exceeds %d elements: %w", inv.maxElements, domain.ErrInvalidInput),
			}
		}
		out = append(out, w)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
