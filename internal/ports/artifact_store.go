package ports

import "github.com/aalvaropc/fnkit/internal/domain"

// ArtifactStore persists run results for later inspection.
type ArtifactStore interface {
	SaveRun(run domain.RunResult) (id string, err error)
}
