package domain

// JSONPathAssertion defines JSONPath-based checks against a JSON output.
type JSONPathAssertion struct {
	Exists   bool
	Eq       *string
	Contains *string
	Matches  *string
	Gt       *float64
	Lt       *float64
}

// AssertionsSpec defines the checks applied to every invocation of a step.
type AssertionsSpec struct {
	// Error is the expected failure kind. When nil, any failure fails the step.
	Error *ErrorKind

	// Equals is compared with the decoded output after a JSON round-trip.
	Equals any

	// HasEquals distinguishes "equals: null" from an absent equals.
	HasEquals bool

	MinLatencyMS *int
	MaxLatencyMS *int

	// JSONPath contains assertions keyed by expression, e.g. "$[0]".
	JSONPath map[string]JSONPathAssertion
}

// Step invokes one function once (Input) or concurrently over several inputs (Inputs).
type Step struct {
	Name     string
	Function string

	Input  any
	Inputs []any

	// Fanout is true when Inputs drives the step.
	Fanout bool

	Limit  int
	Assert AssertionsSpec
}

// Invocations expands the step into the calls it performs.
func (s Step) Invocations() []Invocation {
	if !s.Fanout {
		return []Invocation{{Function: s.Function, Input: s.Input, Limit: s.Limit}}
	}
	out := make([]Invocation, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		out = append(out, Invocation{Function: s.Function, Input: in, Limit: s.Limit})
	}
	return out
}

// Case is a named scenario. Optional cases report failures as warnings.
type Case struct {
	Name        string
	Description string
	Optional    bool
	Steps       []Step
}

// Functions returns the distinct function names referenced by the case, in order.
func (c Case) Functions() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range c.Steps {
		if !seen[s.Function] {
			seen[s.Function] = true
			out = append(out, s.Function)
		}
	}
	return out
}

// Suite groups cases under one name.
type Suite struct {
	Name        string
	Description string
	Cases       []Case

	// Source is the file the suite was loaded from, or "builtin".
	Source string
}

// SuiteRef is a lightweight reference to a suite file on disk.
type SuiteRef struct {
	Name string
	Path string
}
