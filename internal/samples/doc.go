// Package samples holds the five sample functions exercised by the kit.
//
// Each sample is an isolated transform with no dependency on the others:
//
//   - Delay blocks for a number of milliseconds and echoes it back.
//   - Counter accumulates signed deltas and returns the prior total.
//   - Divide returns 100 divided by its argument.
//   - Digest renders the MD5 of a byte slice as lowercase hex.
//   - Repeat lazily zips words with counts and repeats each word.
//
// Failures are returned as *domain.OpError so callers can classify them
// with domain.IsKind.
package samples
