package yamlsuite

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/fnkit/internal/domain"
)

var knownKinds = map[domain.ErrorKind]bool{
	domain.KindInvalidInput: true,
	domain.KindInterrupted:  true,
	domain.KindArithmetic:   true,
	domain.KindExecution:    true,
}

func mapAndValidate(path string, ys yamlSuite) (domain.Suite, error) {
	if strings.TrimSpace(ys.Name) == "" {
		return domain.Suite{}, invalidField(path, "name", "suite name is required")
	}
	if strings.TrimSpace(ys.Description) == "" {
		return domain.Suite{}, invalidField(path, "description", "suite description is required")
	}
	if len(ys.Cases) == 0 {
		return domain.Suite{}, invalidField(path, "cases", "at least one case is required")
	}

	suite := domain.Suite{
		Name:        ys.Name,
		Description: ys.Description,
		Source:      path,
		Cases:       make([]domain.Case, 0, len(ys.Cases)),
	}

	for i, yc := range ys.Cases {
		prefix := fmt.Sprintf("cases[%d]", i)

		if strings.TrimSpace(yc.Name) == "" {
			return domain.Suite{}, invalidField(path, prefix+".name", "case name is required")
		}
		if strings.TrimSpace(yc.Description) == "" {
			return domain.Suite{}, invalidField(path, prefix+".description", "case description is required")
		}
		if len(yc.Steps) == 0 {
			return domain.Suite{}, invalidField(path, prefix+".steps", "at least one step is required")
		}

		c := domain.Case{
			Name:        yc.Name,
			Description: yc.Description,
			Optional:    yc.Optional,
			Steps:       make([]domain.Step, 0, len(yc.Steps)),
		}
		for j, ystep := range yc.Steps {
			step, err := mapStep(path, fmt.Sprintf("%s.steps[%d]", prefix, j), ystep)
			if err != nil {
				return domain.Suite{}, err
			}
			c.Steps = append(c.Steps, step)
		}

		suite.Cases = append(suite.Cases, c)
	}

	return suite, nil
}

func mapStep(path, prefix string, ys yamlStep) (domain.Step, error) {
	if strings.TrimSpace(ys.Function) == "" {
		return domain.Step{}, invalidField(path, prefix+".function", "function is required")
	}

	hasInput := ys.Input.Kind != 0
	hasInputs := ys.Inputs.Kind != 0
	if hasInput == hasInputs {
		return domain.Step{}, invalidField(path, prefix, "exactly one of input or inputs is required")
	}
	if ys.Limit < 0 {
		return domain.Step{}, invalidField(path, prefix+".limit", "limit must not be negative")
	}

	step := domain.Step{
		Name:     ys.Name,
		Function: strings.TrimSpace(ys.Function),
		Limit:    ys.Limit,
		Fanout:   hasInputs,
	}
	if step.Name == "" {
		step.Name = step.Function
	}

	if hasInput {
		v, err := decodeNode(&ys.Input)
		if err != nil {
			return domain.Step{}, invalidField(path, prefix+".input", err.Error())
		}
		step.Input = v
	} else {
		if ys.Inputs.Kind != yaml.SequenceNode {
			return domain.Step{}, invalidField(path, prefix+".inputs", "inputs must be a list")
		}
		if len(ys.Inputs.Content) == 0 {
			return domain.Step{}, invalidField(path, prefix+".inputs", "inputs must not be empty")
		}
		var vs []any
		if err := ys.Inputs.Decode(&vs); err != nil {
			return domain.Step{}, invalidField(path, prefix+".inputs", err.Error())
		}
		step.Inputs = vs
	}

	a, err := mapAssertions(path, prefix+".assert", ys.Assert)
	if err != nil {
		return domain.Step{}, err
	}
	step.Assert = a

	return step, nil
}

func mapAssertions(path, prefix string, ya yamlAssertions) (domain.AssertionsSpec, error) {
	out := domain.AssertionsSpec{
		MinLatencyMS: ya.MinMS,
		MaxLatencyMS: ya.MaxMS,
		JSONPath:     map[string]domain.JSONPathAssertion{},
	}

	if k := strings.TrimSpace(ya.Error); k != "" {
		kind := domain.ErrorKind(k)
		if !knownKinds[kind] {
			return domain.AssertionsSpec{}, invalidField(path, prefix+".error", fmt.Sprintf("unknown error kind %q", k))
		}
		out.Error = &kind
	}

	if ya.Equals.Kind != 0 {
		v, err := decodeNode(&ya.Equals)
		if err != nil {
			return domain.AssertionsSpec{}, invalidField(path, prefix+".equals", err.Error())
		}
		out.Equals = v
		out.HasEquals = true
	}

	for _, p := range []struct {
		name string
		v    *int
	}{{"min_ms", ya.MinMS}, {"max_ms", ya.MaxMS}} {
		if p.v != nil && *p.v < 0 {
			return domain.AssertionsSpec{}, invalidField(path, prefix+"."+p.name, "must not be negative")
		}
	}

	for expr, a := range ya.JSONPath {
		out.JSONPath[expr] = domain.JSONPathAssertion{
			Exists:   a.Exists,
			Eq:       a.Eq,
			Contains: a.Contains,
			Matches:  a.Matches,
			Gt:       a.Gt,
			Lt:       a.Lt,
		}
	}

	return out, nil
}

func decodeNode(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlsuite.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
