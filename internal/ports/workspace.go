package ports

import "github.com/aalvaropc/fnkit/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
