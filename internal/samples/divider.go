package samples

import (
	"fmt"

	"github.com/aalvaropc/fnkit/internal/domain"
)

// Dividend is the fixed numerator used by Divide.
const Dividend = 100

// Divide returns Dividend / divisor, truncated toward zero.
func Divide(divisor int) (int, error) {
	if divisor == 0 {
		return 0, &domain.OpError{
			Op:   "samples.divide",
			Kind: domain.KindArithmetic,
			Err:  fmt.Errorf("%d / 0: %w", Dividend, domain.ErrDivisionByZero),
		}
	}
	return Dividend / divisor, nil
}
