package ports

import (
	"context"

	"github.com/aalvaropc/fnkit/internal/domain"
)

// Invoker calls a named function. Failures raised by the function itself are
// reported in the result; a returned error means the call could not be made.
type Invoker interface {
	Invoke(ctx context.Context, inv domain.Invocation) (domain.InvocationResult, error)
}

// InvokerFactory hands out isolated invokers, one per test case.
type InvokerFactory interface {
	NewInvoker() Invoker
	Has(function string) bool
}
