package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/ports"
)

type ValidateSuites struct {
	invokers ports.InvokerFactory
}

func NewValidateSuites(f ports.InvokerFactory) *ValidateSuites {
	return &ValidateSuites{invokers: f}
}

// Execute checks suites without invoking anything and returns the plan the
// focus selects. Names must be unique across all suites and cases, and every
// function referenced by a selected case must be registered.
func (uc *ValidateSuites) Execute(ctx context.Context, suites []domain.Suite, focus domain.Focus) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}

	if err := CheckNames(suites); err != nil {
		return domain.Plan{}, err
	}

	plan := SelectPlan(suites, focus)
	if plan.CaseCount() == 0 && !focus.IsZero() {
		return plan, &domain.OpError{
			Op:   "usecase.focus",
			Kind: domain.KindNotFound,
			Err: fmt.Errorf("%w: no case matches suites=%v tests=%v",
				domain.ErrNotFound, focus.Suites, focus.Tests),
		}
	}

	if uc.invokers != nil {
		if err := uc.checkFunctions(plan); err != nil {
			return plan, err
		}
	}

	return plan, nil
}

func (uc *ValidateSuites) checkFunctions(plan domain.Plan) error {
	missing := map[string][]string{}
	for _, s := range plan.Suites {
		for _, c := range s.Cases {
			for _, fn := range c.Functions() {
				if !uc.invokers.Has(fn) {
					missing[fn] = append(missing[fn], c.Name)
				}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	fns := make([]string, 0, len(missing))
	for fn := range missing {
		fns = append(fns, fn)
	}
	sort.Strings(fns)

	parts := make([]string, 0, len(fns))
	for _, fn := range fns {
		parts = append(parts, fmt.Sprintf("%q (used by %s)", fn, strings.Join(missing[fn], ", ")))
	}
	return &domain.OpError{
		Op:   "usecase.functions",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: missing function %s", domain.ErrInvalidConfig, strings.Join(parts, "; ")),
	}
}

// CheckNames enforces non-empty names and descriptions, and forbids two items
// (suite or case) sharing a name.
func CheckNames(suites []domain.Suite) error {
	seen := map[string]string{}

	claim := func(path, kind, name, desc string) error {
		if strings.TrimSpace(name) == "" {
			return invalidSuite(path, fmt.Sprintf("%s is missing a name", kind))
		}
		if strings.TrimSpace(desc) == "" {
			return invalidSuite(path, fmt.Sprintf("%s %q is missing a description", kind, name))
		}
		if prev, ok := seen[name]; ok {
			return invalidSuite(path, fmt.Sprintf("%s %q is named like %s", kind, name, prev))
		}
		seen[name] = fmt.Sprintf("%s %q", kind, name)
		return nil
	}

	for _, s := range suites {
		if err := claim(s.Source, "suite", s.Name, s.Description); err != nil {
			return err
		}
		for _, c := range s.Cases {
			if err := claim(s.Source, "case", c.Name, c.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

func invalidSuite(path, msg string) error {
	return &domain.OpError{
		Op:   "usecase.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg),
	}
}

// SelectPlan applies focus. A suite runs when nothing is focused, when it is
// focused itself, or when one of its cases is. A case runs when no tests are
// focused or when it is. Suites left without cases are dropped.
func SelectPlan(suites []domain.Suite, focus domain.Focus) domain.Plan {
	var plan domain.Plan
	for _, s := range suites {
		if !suiteSelected(s, focus) {
			continue
		}

		selected := s
		selected.Cases = nil
		for _, c := range s.Cases {
			if len(focus.Tests) == 0 || slices.Contains(focus.Tests, c.Name) {
				selected.Cases = append(selected.Cases, c)
			}
		}
		if len(selected.Cases) > 0 {
			plan.Suites = append(plan.Suites, selected)
		}
	}
	return plan
}

func suiteSelected(s domain.Suite, focus domain.Focus) bool {
	if len(focus.Suites) == 0 {
		return true
	}
	if slices.Contains(focus.Suites, s.Name) {
		return true
	}
	for _, c := range s.Cases {
		if slices.Contains(focus.Tests, c.Name) {
			return true
		}
	}
	return false
}
