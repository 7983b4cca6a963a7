// Package domain contains the core model for fnkit: suites of cases that
// invoke sample functions, the assertions applied to their outputs and the
// results of a run.
//
// The domain is persistence-agnostic: it does not depend on YAML parsing,
// the filesystem or the samples themselves. Infra/adapters map into/from these types.
package domain
