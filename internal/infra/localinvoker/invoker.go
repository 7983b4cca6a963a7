package localinvoker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/logger"
	"github.com/aalvaropc/fnkit/internal/ports"
	"github.com/aalvaropc/fnkit/internal/samples"
)

const defaultMaxElements = 1 << 20

// Factory builds isolated invokers sharing one configuration.
type Factory struct {
	initial     int64
	timeout     time.Duration
	maxElements int
	log         *slog.Logger
}

type Option func(*Factory)

// WithCounterInitial sets the starting value of every fresh counter.
func WithCounterInitial(v int64) Option {
	return func(f *Factory) { f.initial = v }
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Factory) { f.timeout = d }
}

// WithMaxElements caps the number of elements a streaming function may produce.
func WithMaxElements(n int) Option {
	return func(f *Factory) { f.maxElements = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) { f.log = l }
}

func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		timeout:     30 * time.Second,
		maxElements: defaultMaxElements,
		log:         logger.L(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromConfig applies the invoke section of cfg.
func FromConfig(cfg domain.Config, opts ...Option) *Factory {
	return NewFactory(append([]Option{WithTimeout(cfg.Invoke.Timeout)}, opts...)...)
}

var _ ports.InvokerFactory = (*Factory)(nil)

func (f *Factory) NewInvoker() ports.Invoker {
	return f.New()
}

// New returns an invoker with its own counter state.
func (f *Factory) New() *Invoker {
	return &Invoker{
		counter:     samples.NewCounter(f.initial),
		timeout:     f.timeout,
		maxElements: f.maxElements,
		log:         f.log,
	}
}

func (f *Factory) Has(function string) bool {
	_, ok := registry[function]
	return ok
}

// Functions lists the registered function names, sorted.
func (f *Factory) Functions() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Invoker dispatches invocations to the samples. Safe for concurrent use.
type Invoker struct {
	counter     *samples.Counter
	timeout     time.Duration
	maxElements int
	log         *slog.Logger
}

var _ ports.Invoker = (*Invoker)(nil)

func (i *Invoker) Invoke(ctx context.Context, inv domain.Invocation) (domain.InvocationResult, error) {
	fn, ok := registry[inv.Function]
	if !ok {
		return domain.InvocationResult{}, &domain.OpError{
			Op:   "localinvoker.invoke",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("function %q: %w", inv.Function, domain.ErrNotFound),
		}
	}

	raw, err := json.Marshal(inv.Input)
	if err != nil {
		return domain.InvocationResult{}, invalidInput(inv.Function, err)
	}

	callCtx := ctx
	cancel := func() {}
	if i.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, i.timeout)
	}
	defer cancel()

	start := time.Now()
	out, callErr := fn(callCtx, i, raw, inv.Limit)
	lat := time.Since(start)

	result := domain.InvocationResult{
		Function:  inv.Function,
		LatencyMS: lat.Milliseconds(),
	}

	var de *decodeError
	if errors.As(callErr, &de) {
		return domain.InvocationResult{}, invalidInput(inv.Function, de.err)
	}
	if callErr != nil {
		result.Error = domain.NewInvocationError(callErr)
		i.log.Debug("invoke.failed", "function", inv.Function, "kind", result.Error.Kind, "latency_ms", result.LatencyMS)
		return result, nil
	}

	b, err := json.Marshal(out)
	if err != nil {
		return domain.InvocationResult{}, &domain.OpError{
			Op:   "localinvoker.encode",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	result.Output = b

	i.log.Debug("invoke.done", "function", inv.Function, "latency_ms", result.LatencyMS)
	return result, nil
}

// decodeError marks input that never reached the function.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }

func invalidInput(function string, err error) error {
	return &domain.OpError{
		Op:   "localinvoker.decode",
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("function %q: %w: %v", function, domain.ErrInvalidInput, err),
	}
}
