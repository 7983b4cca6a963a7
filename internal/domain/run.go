package domain

import "time"

// Outcome classifies the result of a case.
type Outcome string

const (
	OutcomePass            Outcome = "pass"
	OutcomeHardFailure     Outcome = "hard_failure"
	OutcomeOptionalFailure Outcome = "optional_failure"
	OutcomeTechnicalError  Outcome = "technical_error"
)

// AssertionResult is the output of a single assertion.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// StepResult holds the invocations of one step and their assertions.
type StepResult struct {
	Name        string             `json:"name"`
	Function    string             `json:"function"`
	Invocations []InvocationResult `json:"invocations"`
	Assertions  []AssertionResult  `json:"assertions"`
}

// Failed reports whether any assertion of the step failed.
func (r StepResult) Failed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

// CaseResult is the outcome of a single case.
type CaseResult struct {
	Suite       string       `json:"suite"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Optional    bool         `json:"optional"`
	Outcome     Outcome      `json:"outcome"`
	Message     string       `json:"message,omitempty"`
	DurationMS  int64        `json:"duration_ms"`
	Steps       []StepResult `json:"steps"`
}

// SuiteResult groups case results by suite.
type SuiteResult struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cases       []CaseResult `json:"cases"`
}

// RunResult represents a whole kit run.
type RunResult struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Focus     Focus         `json:"focus"`
	Suites    []SuiteResult `json:"suites"`
}

// Tally counts cases per outcome.
func (r RunResult) Tally() map[Outcome]int {
	out := map[Outcome]int{}
	for _, s := range r.Suites {
		for _, c := range s.Cases {
			out[c.Outcome]++
		}
	}
	return out
}

// Failed reports whether the run contains hard failures or technical errors.
// Optional failures are warnings only.
func (r RunResult) Failed() bool {
	t := r.Tally()
	return t[OutcomeHardFailure] > 0 || t[OutcomeTechnicalError] > 0
}

// Plan lists the suites and cases selected to run.
type Plan struct {
	Suites []Suite
}

// CaseCount returns the number of selected cases.
func (p Plan) CaseCount() int {
	n := 0
	for _, s := range p.Suites {
		n += len(s.Cases)
	}
	return n
}
