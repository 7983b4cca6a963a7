package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/localinvoker"
	"github.com/aalvaropc/fnkit/internal/infra/yamlsuite"
)

func TestValidateSuites_Builtin(t *testing.T) {
	suites, err := yamlsuite.Builtin()
	if err != nil {
		t.Fatalf("Builtin error: %v", err)
	}

	plan, err := NewValidateSuites(localinvoker.NewFactory()).Execute(context.Background(), suites, domain.Focus{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if plan.CaseCount() != 10 {
		t.Fatalf("expected 10 cases, got=%d", plan.CaseCount())
	}
}

func TestValidateSuites_WithoutFactorySkipsFunctions(t *testing.T) {
	suites := []domain.Suite{{Name: "s", Description: "d", Cases: []domain.Case{
		{Name: "c", Description: "d", Steps: []domain.Step{{Function: "unknown", Input: 1}}},
	}}}

	if _, err := NewValidateSuites(nil).Execute(context.Background(), suites, domain.Focus{}); err != nil {
		t.Fatalf("expected no error without a factory, got=%v", err)
	}
}

func TestValidateSuites_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewValidateSuites(nil).Execute(ctx, nil, domain.Focus{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCheckNames_MissingSuiteName(t *testing.T) {
	err := CheckNames([]domain.Suite{{Description: "d", Source: "x.yaml"}})
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got=%v", err)
	}
	var opErr *domain.OpError
	if !errors.As(err, &opErr) || opErr.Path != "x.yaml" {
		t.Fatalf("expected path x.yaml in error, got=%v", err)
	}
}
