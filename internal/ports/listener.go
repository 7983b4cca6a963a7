package ports

import "github.com/aalvaropc/fnkit/internal/domain"

// ExecutionListener observes a run as it progresses.
type ExecutionListener interface {
	AboutToStart(plan domain.Plan)
	SuiteStart(suite domain.Suite)
	CaseDone(result domain.CaseResult)
}
